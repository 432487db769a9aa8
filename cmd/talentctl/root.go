package main

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/honeycarbs/talent-search/internal/app"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

const (
	appName       = "talentctl"
	defaultServer = "http://localhost:8080/mcp/stream"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "talentctl searches, filters and uploads candidates via a talent-search server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (YAML, same keys as the server environment)")
	rootCmd.PersistentFlags().String("server", defaultServer, "MCP endpoint of the talent-search server")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindEnv("server", "TALENTCTL_SERVER")
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		cobra.CheckErr(fmt.Errorf("reading config %s: %w", cfgFile, err))
	}
}

func newLogger() *logging.Logger {
	level, format := "info", "console"
	if viper.GetBool("debug") {
		level = "debug"
	}
	if viper.GetBool("json") {
		format = "json"
	}
	return logging.New(level, format)
}

// connect opens an MCP session to the configured server
func connect(ctx context.Context, log *logging.Logger) (*sdkmcp.ClientSession, error) {
	endpoint := viper.GetString("server")
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    appName,
		Version: app.Version,
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", endpoint, err)
	}
	log.Debug("connected to server", "endpoint", endpoint)
	return session, nil
}

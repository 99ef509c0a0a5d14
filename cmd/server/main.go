package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/appstate"
	"github.com/acc-switch/accswitch/internal/bootstrap"
	"github.com/acc-switch/accswitch/internal/platforms"
	"github.com/acc-switch/accswitch/internal/server"
	"github.com/acc-switch/accswitch/internal/web"
)

const (
	commandUse                        = "accswitch"
	commandShortDescription           = "Serve the account switcher interface over HTTP"
	envPrefix                         = "ACCSWITCH"
	flagHostName                      = "host"
	flagHostDescription               = "Host interface for the HTTP server"
	flagPortName                      = "port"
	flagPortDescription               = "Port for the HTTP server"
	flagUserDataDirectoryName         = "user-data-dir"
	flagUserDataDirectoryDescription  = "Directory holding settings, LoginCache and wwwroot"
	flagLegacyDirectoryName           = "legacy-dir"
	flagLegacyDirectoryDescription    = "Install directory older releases stored settings in"
	flagDevelopmentLoggingName        = "development-logging"
	flagDevelopmentLoggingDescription = "Use human-readable debug logging"
	defaultHost                       = "127.0.0.1"
	defaultPort                       = 5000
	shutdownTimeout                   = 5 * time.Second
	errMessageLoggerCreate            = "create logger"
	errMessageResolvePaths            = "resolve directories"
	errMessageBundledAssets           = "open bundled assets"
	errMessageStaticAssets            = "provision static assets"
	errMessageLoadPlatforms           = "load platforms"
	errMessageListenAndServe          = "listen and serve"
	errMessageShutdown                = "shutdown"
	logMessageDirectoriesResolved     = "directories resolved"
	logMessageLegacyMigrated          = "legacy files migrated"
	logMessageLegacyMigrationFailure  = "legacy migration incomplete"
	logMessageStaticAssetsCopied      = "bundled web root copied"
	logMessageStartingServer          = "starting HTTP server"
	logMessageShuttingDown            = "shutting down HTTP server"
	logMessageServerStopped           = "server stopped"
	logMessageSettingsSaveFailure     = "settings save on exit failed"
	logMessageListenError             = "server listen failure"
	logFieldAddress                   = "address"
	logFieldUserData                  = "user_data"
	logFieldLegacy                    = "legacy"
	logFieldMovedFiles                = "moved_files"
	logFieldLoginCacheCopied          = "login_cache_copied"
	logFieldStaticDirectory           = "static_directory"
)

func main() {
	cobra.CheckErr(newServerCommand().Execute())
}

func newServerCommand() *cobra.Command {
	command := &cobra.Command{
		Use:          commandUse,
		Short:        commandShortDescription,
		RunE:         runServerCommand,
		SilenceUsage: true,
	}

	command.Flags().String(flagHostName, defaultHost, flagHostDescription)
	command.Flags().Int(flagPortName, defaultPort, flagPortDescription)
	command.Flags().String(flagUserDataDirectoryName, "", flagUserDataDirectoryDescription)
	command.Flags().String(flagLegacyDirectoryName, "", flagLegacyDirectoryDescription)
	command.Flags().Bool(flagDevelopmentLoggingName, false, flagDevelopmentLoggingDescription)

	for _, flagName := range []string{flagHostName, flagPortName, flagUserDataDirectoryName, flagLegacyDirectoryName, flagDevelopmentLoggingName} {
		bindFlagToViper(command, flagName)
	}

	cobra.OnInitialize(configureEnvironment)

	return command
}

func bindFlagToViper(command *cobra.Command, flagName string) {
	cobra.CheckErr(viper.BindPFlag(flagName, command.Flags().Lookup(flagName)))
}

func configureEnvironment() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServerCommand(command *cobra.Command, _ []string) error {
	logger, err := newLogger(viper.GetBool(flagDevelopmentLoggingName))
	if err != nil {
		return fmt.Errorf("%s: %w", errMessageLoggerCreate, err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := bootstrap.ResolvePaths(bootstrap.PathConfig{
		UserDataDirectory: viper.GetString(flagUserDataDirectoryName),
		LegacyDirectory:   viper.GetString(flagLegacyDirectoryName),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errMessageResolvePaths, err)
	}
	logger.Info(logMessageDirectoriesResolved, zap.String(logFieldUserData, paths.UserData), zap.String(logFieldLegacy, paths.Legacy))

	report, migrationErr := bootstrap.MigrateLegacyFiles(paths.Legacy, paths.UserData, platforms.Names())
	if migrationErr != nil {
		logger.Warn(logMessageLegacyMigrationFailure, zap.Error(migrationErr))
	}
	if len(report.MovedFiles) > 0 || report.LoginCacheCopied {
		logger.Info(logMessageLegacyMigrated, zap.Strings(logFieldMovedFiles, report.MovedFiles), zap.Bool(logFieldLoginCacheCopied, report.LoginCacheCopied))
	}

	bundledAssets, err := web.StaticAssets()
	if err != nil {
		return fmt.Errorf("%s: %w", errMessageBundledAssets, err)
	}
	copied, err := bootstrap.EnsureStaticAssets(paths.UserData, bundledAssets)
	if err != nil {
		return fmt.Errorf("%s: %w", errMessageStaticAssets, err)
	}
	staticDirectory := bootstrap.StaticDirectory(paths.UserData)
	if copied {
		logger.Info(logMessageStaticAssetsCopied, zap.String(logFieldStaticDirectory, staticDirectory))
	}

	registry := platforms.NewRegistry(platforms.Config{UserDataDirectory: paths.UserData, Logger: logger})
	if err := registry.LoadAll(ctx); err != nil {
		return fmt.Errorf("%s: %w", errMessageLoadPlatforms, err)
	}
	state := appstate.New(appstate.Config{UserDataDirectory: paths.UserData, Logger: logger})

	router, err := server.NewRouter(server.RouterConfig{
		Platforms:       registry,
		State:           state,
		StaticDirectory: staticDirectory,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	address := fmt.Sprintf("%s:%d", viper.GetString(flagHostName), viper.GetInt(flagPortName))
	httpServer := &http.Server{
		Addr:    address,
		Handler: router,
		// Event streams end with the signal context so Shutdown does not wait on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serveErrors := make(chan error, 1)
	go func() {
		logger.Info(logMessageStartingServer, zap.String(logFieldAddress, address))
		serveErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(logMessageListenError, zap.Error(err))
			return fmt.Errorf("%s: %w", errMessageListenAndServe, err)
		}
	case <-ctx.Done():
		logger.Info(logMessageShuttingDown)
		shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownContext); err != nil {
			return fmt.Errorf("%s: %w", errMessageShutdown, err)
		}
	}

	// Rewrite the settings files so they carry every known key, keeping keys only found on disk.
	if err := registry.SaveAll(context.Background()); err != nil {
		logger.Warn(logMessageSettingsSaveFailure, zap.Error(err))
	}
	logger.Info(logMessageServerStopped)
	return nil
}

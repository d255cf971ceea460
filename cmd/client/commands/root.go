package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/client"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

var (
	serverURL string
	dbPath    string
	build     BuildInfo

	courier    client.Courier
	localStore store.LocalStore
)

func Execute(info BuildInfo) error {
	build = info

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "courier",
		Short:         "Send and receive end-to-end encrypted files across federated servers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setUp(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if localStore != nil {
				return localStore.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "home server URL (env ADAPTER_ADDRESS)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "local database (default <user config dir>/file-courier/client.db)")

	root.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		sendCmd(),
		receiveCmd(),
		listCmd(),
		refuseCmd(),
		deleteCmd(),
		keysCmd(),
		versionCmd(),
	)
	return root
}

func setUp(cmd *cobra.Command) error {
	log := logger.NewClientLogger("courier-client")

	overrides := &config.StructuredConfig{}
	overrides.Adapter.HTTPAddress = serverURL
	overrides.Storage.DB.DSN = dbPath
	if dbPath == "" && os.Getenv("STORAGE_DB_DSN") == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locate config dir: %w", err)
		}
		overrides.Storage.DB.DSN = filepath.Join(dir, "file-courier", "client.db")
	}

	cfg, err := config.GetClientConfig(overrides)
	if err != nil {
		return err
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	localStore, err = store.NewLocalStore(cmd.Context(), cfg.Storage.TrustStoreDSN, log)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	courier = client.NewCourier(serverAdapter, localStore, crypto.NewKeyCustody(cfg.Crypto.KDF), cfg.Crypto, log)
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golangdaddy/roadrush/pkg/api"
	"github.com/golangdaddy/roadrush/pkg/engine"
	"github.com/golangdaddy/roadrush/pkg/game"
	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/golangdaddy/roadrush/pkg/netclient"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const dialTimeout = 5 * time.Second

// clientConfig is shared by every subcommand.
type clientConfig struct {
	Server      string
	Credentials string
	Assets      string
}

func newRootCmd(cfg *clientConfig) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ROADRUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "roadrush",
		Short: "Dodge the traffic. Play runs by default.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.Context(), cfg)
		},
	}

	defaultCreds, err := models.DefaultPath()
	if err != nil {
		defaultCreds = "credentials.json"
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&cfg.Server, "server", "s", "http://localhost:3000", "game server address (env: ROADRUSH_SERVER)")
	fs.StringVar(&cfg.Credentials, "credentials", defaultCreds, "where the login token is kept (env: ROADRUSH_CREDENTIALS)")
	fs.StringVar(&cfg.Assets, "assets", "assets", "directory holding car.png, obstacle.png and the sounds (env: ROADRUSH_ASSETS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(
		newPlayCmd(cfg),
		newRegisterCmd(cfg),
		newLoginCmd(cfg),
		newLogoutCmd(cfg),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func newPlayCmd(cfg *clientConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.Context(), cfg)
		},
	}
}

func play(ctx context.Context, cfg *clientConfig) error {
	creds, err := models.LoadFromFile(cfg.Credentials)
	if errors.Is(err, models.ErrNoCredentials) {
		return errors.New("not logged in, run `roadrush login` first")
	}
	if err != nil {
		return err
	}

	server := cfg.Server
	if creds.Server != "" {
		server = creds.Server
	}

	opponents := engine.NewOpponents()
	opts := game.Options{
		Player:    creds.Username,
		Token:     creds.Token,
		AssetDir:  cfg.Assets,
		API:       api.New(server, nil),
		Opponents: opponents,
	}

	if relay, err := dialRelay(ctx, server, opponents); err != nil {
		log.Printf("Could not reach relay, playing offline: %v", err)
	} else {
		defer relay.Close()
		opts.Relay = relay
	}

	ebiten.SetWindowSize(int(engine.CanvasWidth), int(engine.CanvasHeight))
	ebiten.SetWindowTitle("Roadrush")

	err = ebiten.RunGame(game.NewGame(opts))
	if errors.Is(err, game.ErrUnauthorized) {
		if rmErr := models.RemoveFile(cfg.Credentials); rmErr != nil {
			log.Printf("Could not remove %s: %v", cfg.Credentials, rmErr)
		}
		return fmt.Errorf("%w, run `roadrush login`", err)
	}
	return err
}

func dialRelay(ctx context.Context, server string, opponents *engine.Opponents) (*netclient.Client, error) {
	url, err := netclient.RelayURL(server)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	return netclient.Dial(ctx, url, opponents)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &clientConfig{}
	cobra.CheckErr(newRootCmd(cfg).ExecuteContext(ctx))
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/golangdaddy/roadrush/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newCmd(cfg *server.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ROADRUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "roadrush-server",
		Short:         "Accounts, high scores and live positions for roadrush.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       server.ReleaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return server.Serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: ROADRUSH_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 3000, "port to listen on (env: ROADRUSH_PORT)")
	fs.StringVar(&cfg.DatabaseURL, "database-url", "", "postgres connection string, in-memory store when empty (env: ROADRUSH_DATABASE_URL)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "secret used to sign login tokens (env: ROADRUSH_JWT_SECRET)")
	fs.BoolVar(&cfg.OTP, "otp", false, "require an emailed code after the password (env: ROADRUSH_OTP)")
	fs.DurationVar(&cfg.OTPTTL, "otp-ttl", 5*time.Minute, "how long an emailed code stays valid (env: ROADRUSH_OTP_TTL)")
	fs.StringVar(&cfg.SMTP.Host, "smtp-host", "", "smtp relay for login codes, log only when empty (env: ROADRUSH_SMTP_HOST)")
	fs.IntVar(&cfg.SMTP.Port, "smtp-port", 587, "smtp relay port (env: ROADRUSH_SMTP_PORT)")
	fs.StringVar(&cfg.SMTP.Username, "smtp-username", "", "smtp username (env: ROADRUSH_SMTP_USERNAME)")
	fs.StringVar(&cfg.SMTP.Password, "smtp-password", "", "smtp password (env: ROADRUSH_SMTP_PASSWORD)")
	fs.StringVar(&cfg.SMTP.From, "mail-from", "", "sender address for login codes (env: ROADRUSH_MAIL_FROM)")
	fs.StringVar(&cfg.PublicDir, "public-dir", "", "directory of static files to serve, e.g. a browser build (env: ROADRUSH_PUBLIC_DIR)")
	fs.BoolVar(&cfg.Profile, "profile", false, "register net/http/pprof handlers (env: ROADRUSH_PROFILE)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "display additional output (env: ROADRUSH_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("roadrush-server v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

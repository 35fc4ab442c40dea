package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golangdaddy/roadrush/pkg/api"
	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter reads answers from stdin, hiding the echo for passwords when
// stdin is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *prompter) password(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *prompter) username(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return p.line("Username: ")
}

func newRegisterCmd(cfg *clientConfig) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			user, err := p.username(username)
			if err != nil {
				return err
			}
			pass, err := p.password("Password: ")
			if err != nil {
				return err
			}
			again, err := p.password("Repeat password: ")
			if err != nil {
				return err
			}
			if pass != again {
				return errors.New("passwords do not match")
			}

			msg, err := api.New(cfg.Server, nil).Register(cmd.Context(), user, pass)
			if err != nil {
				return err
			}
			cmd.Println(msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name, prompted for when empty")
	return cmd
}

func newLoginCmd(cfg *clientConfig) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			user, err := p.username(username)
			if err != nil {
				return err
			}
			pass, err := p.password("Password: ")
			if err != nil {
				return err
			}

			token, err := login(cmd.Context(), api.New(cfg.Server, nil), p, user, pass)
			if err != nil {
				return err
			}
			if err := models.NewCredentials(cfg.Server, user, token).SaveToFile(cfg.Credentials); err != nil {
				return err
			}
			cmd.Printf("Logged in as %s\n", user)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name, prompted for when empty")
	return cmd
}

// login runs the password step and, when the server mails a code, the
// code step.
func login(ctx context.Context, client *api.Client, p *prompter, user, pass string) (string, error) {
	res, err := client.Login(ctx, user, pass)
	if err != nil {
		return "", err
	}
	if res.TempToken == "" {
		return res.Token, nil
	}

	code, err := p.line(fmt.Sprintf("Enter the code sent to %s: ", user))
	if err != nil {
		return "", err
	}
	return client.VerifyOTP(ctx, code, res.TempToken)
}

func newLogoutCmd(cfg *clientConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := models.RemoveFile(cfg.Credentials); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

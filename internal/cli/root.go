// Package cli implements adminctl, a terminal client for the content API.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dsignme/internal/apiclient"
	"dsignme/internal/listing"
)

// Settings are read from the config file, DSIGNME_* variables and flags.
type Settings struct {
	APIURL    string `mapstructure:"api_url"`
	TokenFile string `mapstructure:"token_file"`
	PageSize  int    `mapstructure:"page_size"`
}

type app struct {
	in       io.Reader
	out      io.Writer
	cfgFile  string
	settings Settings
	session  *sessionFile
}

// NewRootCmd builds the adminctl command tree reading answers from in and
// writing to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}
	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Manage categories, projects and service steps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadSettings()
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.dsignme.yaml)")

	cmd.AddCommand(a.newLoginCmd(), a.newLogoutCmd(), a.newPasswdCmd(), a.newCategoriesCmd(), a.newProjectsCmd(), a.newStepsCmd())
	return cmd
}

// Execute runs adminctl and exits 1 on error.
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apiclient.FriendlyMessage(err, err.Error()))
		os.Exit(1)
	}
}

func (a *app) loadSettings() error {
	v := viper.New()
	home, _ := os.UserHomeDir()

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("token_file", filepath.Join(home, ".dsignme-token"))
	v.SetDefault("page_size", listing.DefaultPageSize)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(home)
		v.SetConfigName(".dsignme")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DSIGNME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&a.settings); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if a.settings.PageSize <= 0 {
		a.settings.PageSize = listing.DefaultPageSize
	}
	a.session = &sessionFile{path: a.settings.TokenFile}
	return nil
}

// client returns an API client, authenticated when a session is stored.
func (a *app) client() *apiclient.Client {
	c := apiclient.New(a.settings.APIURL)
	if tok, err := a.session.Load(); err == nil {
		return c.WithSession(apiclient.StaticToken(tok))
	}
	return c
}

// confirm asks a yes/no question unless yes is already set.
func (a *app) confirm(question string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintf(a.out, "%s [y/N]: ", question)
	var answer string
	_, _ = fmt.Fscanln(a.in, &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

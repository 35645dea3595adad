package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/jamwaves/internal/errmsg"
	"github.com/llehouerou/jamwaves/internal/lastfm"
	"github.com/llehouerou/jamwaves/internal/state"
)

var errLastfmNotConfigured = errors.New("lastfm.api_key and lastfm.api_secret must be set in the config file")

func newLastfmCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lastfm",
		Short: "Manage the Last.fm scrobbling account",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Link a Last.fm account",
			Long:  `Opens a browser to authorize jamwaves on Last.fm and stores the session.`,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := runLastfmLogin(cmd, o); err != nil {
					return errmsg.Wrap(errmsg.OpLastfmAuth, err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the linked Last.fm account",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				store, err := openStore(o.cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := state.DeleteLastfmSession(store); err != nil {
					return err
				}
				fmt.Fprintln(o.out, "Last.fm account unlinked")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the linked Last.fm account",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				store, err := openStore(o.cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				sess, err := state.GetLastfmSession(store)
				if err != nil {
					return err
				}
				if o.jsonOut {
					return printJSON(o.out, map[string]any{
						"configured": o.cfg.HasLastfmConfig(),
						"linked":     sess != nil,
						"session":    sess,
					})
				}
				switch {
				case !o.cfg.HasLastfmConfig():
					fmt.Fprintln(o.out, "Last.fm is not configured")
				case sess == nil:
					fmt.Fprintln(o.out, "Last.fm is configured but no account is linked")
				default:
					fmt.Fprintf(o.out, "Linked to %s since %s\n", sess.Username, FormatAge(sess.LinkedAt))
				}
				return nil
			},
		},
	)
	return cmd
}

func runLastfmLogin(cmd *cobra.Command, o *options) error {
	if !o.cfg.HasLastfmConfig() {
		return errLastfmNotConfigured
	}
	client := lastfm.New(o.cfg.Lastfm.APIKey, o.cfg.Lastfm.APISecret)

	token, err := client.GetToken()
	if err != nil {
		return err
	}

	srv, err := lastfm.ListenCallback(lastfm.DefaultCallbackAddr)
	if err != nil {
		return err
	}
	defer srv.Close()

	authURL := client.GetAuthURL(token, srv.URL())
	fmt.Fprintln(o.out, "Opening browser for Last.fm authorization...")
	if err := lastfm.OpenBrowser(authURL); err != nil {
		fmt.Fprintf(o.out, "Could not open browser automatically.\nPlease open this URL in your browser:\n\n%s\n\n", authURL)
	}
	fmt.Fprintln(o.out, "Waiting for authorization...")

	received, err := srv.Wait(cmd.Context(), lastfm.AuthTimeout)
	if err != nil {
		return err
	}
	if received != "" {
		token = received
	}

	sess, err := client.GetSession(token)
	if err != nil {
		return err
	}

	store, err := openStore(o.cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := state.SaveLastfmSession(store, sess.Username, sess.Key); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "Linked Last.fm account %s\n", sess.Username)
	return nil
}

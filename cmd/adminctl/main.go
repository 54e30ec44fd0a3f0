package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/municipio-ibarra/adminclient"
	"github.com/municipio-ibarra/adminclient/core/httpclient"
	"github.com/municipio-ibarra/adminclient/core/logger"
)

const usage = `Command line access to the municipal administration API.
The session token is kept in a local SQLite file between runs.`

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		debug    bool
		jsonLogs bool
		tokenDB  string
	)

	// withClient opens the client for one command and closes it afterwards.
	withClient := func(fn func(*cli.Context, *adminclient.Client) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := adminclient.LoadConfig()
			if err != nil {
				return err
			}
			if tokenDB != "" {
				cfg.TokenDB = tokenDB
			}
			if cfg.TokenDB == "" {
				cfg.TokenDB = defaultTokenDB()
			}

			opts := []logger.Option{logger.WithOutput(os.Stderr), logger.WithLevel(slog.LevelWarn)}
			if debug {
				opts = append(opts, logger.WithDevelopment("adminctl"))
			}
			if jsonLogs {
				opts = append(opts, logger.WithJSONFormatter())
			}

			client, err := adminclient.Open(c.Context, cfg, adminclient.WithLogger(logger.New(opts...)))
			if err != nil {
				return err
			}
			defer client.Close()
			return fn(c, client)
		}
	}

	app := &cli.App{
		Name:  "adminctl",
		Usage: usage,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "Log every request to stderr", Destination: &debug},
			&cli.BoolFlag{Name: "json-logs", Usage: "Write logs as JSON", Destination: &jsonLogs},
			&cli.StringFlag{Name: "token-db", Usage: "SQLite `FILE` holding the session token", EnvVars: []string{"ADMIN_TOKEN_DB"}, Destination: &tokenDB},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Signs in and stores the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, EnvVars: []string{"ADMIN_USERNAME"}, Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"ADMIN_PASSWORD"}, Required: true},
				},
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					res := client.Login(c.Context, adminclient.LoginRequest{
						Username: c.String("username"),
						Password: c.String("password"),
					})
					if !res.Success {
						return failure(res)
					}
					if err := res.Data.Storage.Err(); err != nil {
						fmt.Fprintln(os.Stderr, "warning: token not saved everywhere:", err)
					}
					return printJSON(map[string]any{
						"message":      res.Message,
						"user":         res.Data.User,
						"token_source": res.Data.TokenSource,
					})
				}),
			},
			{
				Name:  "logout",
				Usage: "Signs out and removes the stored token",
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					res := client.Logout(c.Context)
					fmt.Println(res.Message)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "Shows server reachability and the session state",
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					health := client.HealthCheck(c.Context)
					return printJSON(map[string]any{
						"server":  health.Data,
						"message": health.Message,
						"session": client.DebugInfo(c.Context),
					})
				}),
			},
			{
				Name:  "stats",
				Usage: "Shows the dashboard counters",
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					return printResponse(client.DashboardStats(c.Context))
				}),
			},
			{
				Name:  "pending",
				Usage: "Lists projects or businesses awaiting review",
				Flags: append(pageFlags(), businessFlag()),
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					page := pageRequest(c)
					if c.Bool("business") {
						return printResponse(client.PendingBusinesses(c.Context, page))
					}
					return printResponse(client.PendingProjects(c.Context, page))
				}),
			},
			{
				Name:      "approve",
				Usage:     "Approves a project or business",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{businessFlag()},
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					if c.Bool("business") {
						n, err := strconv.ParseInt(id, 10, 64)
						if err != nil {
							return cli.Exit("business ID must be numeric", 2)
						}
						return printResponse(client.ApproveBusiness(c.Context, n))
					}
					return printResponse(client.ApproveProject(c.Context, adminclient.ID(id)))
				}),
			},
			{
				Name:      "reject",
				Usage:     "Rejects a project, business or user registration",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					businessFlag(),
					&cli.BoolFlag{Name: "user", Usage: "Reject a user registration"},
					&cli.StringFlag{Name: "observation", Aliases: []string{"o"}, Usage: "Reviewer note sent with the rejection"},
				},
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					note := c.String("observation")
					switch {
					case c.Bool("user"):
						return printResponse(client.RejectUser(c.Context, adminclient.ID(id), note))
					case c.Bool("business"):
						n, err := strconv.ParseInt(id, 10, 64)
						if err != nil {
							return cli.Exit("business ID must be numeric", 2)
						}
						if note != "" {
							return printResponse(client.RejectBusinessWithObservation(c.Context, n, note))
						}
						return printResponse(client.RejectBusiness(c.Context, n))
					case note != "":
						return printResponse(client.RejectProjectWithObservation(c.Context, adminclient.ID(id), note))
					default:
						return printResponse(client.RejectProject(c.Context, adminclient.ID(id)))
					}
				}),
			},
			{
				Name:  "businesses",
				Usage: "Lists or searches businesses",
				Flags: append(pageFlags(),
					&cli.StringFlag{Name: "category", Usage: "Only businesses in this category"},
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Free-text search"},
				),
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					page := pageRequest(c)
					if q := c.String("search"); q != "" {
						return printResponse(client.SearchBusinesses(c.Context, q, page))
					}
					return printResponse(client.ListBusinesses(c.Context, page, c.String("category")))
				}),
			},
			{
				Name:      "documents",
				Usage:     "Downloads every document of a user or business into a directory",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					businessFlag(),
					&cli.StringFlag{Name: "out", Usage: "Target `DIR`", Value: "."},
				},
				Action: withClient(func(c *cli.Context, client *adminclient.Client) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					files := map[string]string{}
					var problems []string
					if c.Bool("business") {
						n, err := strconv.ParseInt(id, 10, 64)
						if err != nil {
							return cli.Exit("business ID must be numeric", 2)
						}
						res := client.AllBusinessDocuments(c.Context, n)
						files["cedula-"+id+".pdf"] = res.Data.Cedula
						files["logo-"+id+".img"] = res.Data.Logo
						problems = res.Data.Errors
					} else {
						res := client.AllUserDocuments(c.Context, adminclient.ID(id))
						files["certificate-"+id+".pdf"] = res.Data.Certificate
						files["identity-"+id+".pdf"] = res.Data.IdentityDocument
						files["signed-"+id+".pdf"] = res.Data.SignedDocument
						problems = res.Data.Errors
					}
					for _, p := range problems {
						fmt.Fprintln(os.Stderr, p)
					}
					return writeDocuments(c.String("out"), files)
				}),
			},
		},
	}

	// Exit coders are reported and terminate inside RunContext.
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "Zero-based page number"},
		&cli.IntFlag{Name: "size", Usage: "Page size", Value: 10},
	}
}

func businessFlag() cli.Flag {
	return &cli.BoolFlag{Name: "business", Aliases: []string{"b"}, Usage: "Act on a business instead of a project"}
}

func pageRequest(c *cli.Context) adminclient.PageRequest {
	return adminclient.PageRequest{Page: c.Int("page"), Size: c.Int("size")}
}

func argID(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("exactly one ID argument is required", 2)
	}
	return c.Args().First(), nil
}

func failure[T any](res httpclient.Response[T]) error {
	msg := res.Error
	if msg == "" {
		msg = res.Message
	}
	return cli.Exit(msg, 1)
}

func printResponse[T any](res httpclient.Response[T]) error {
	if !res.Success {
		return failure(res)
	}
	return printJSON(res.Data)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDocuments(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, data := range files {
		if data == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}

func defaultTokenDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "adminctl-session.db"
	}
	dir = filepath.Join(dir, "adminctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "adminctl-session.db"
	}
	return filepath.Join(dir, "session.db")
}

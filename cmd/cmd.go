// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

var pageFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "page",
		Usage: "Page number (zero-based)",
		Value: 0,
	},
	&cli.IntFlag{
		Name:  "size",
		Usage: "Page size",
		Value: 20,
	},
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and the local cache database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}

// authCommand handles sign in, sign up and session inspection
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with the CloudFlix API",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and persist the session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Account email",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "middle-name"},
					&cli.StringFlag{Name: "date-of-birth", Usage: "YYYY-MM-DD"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show current session state",
				Flags:  outputFlags(),
				Action: r.AuthStatus,
			},
			{
				Name:   "whoami",
				Usage:  "Print the signed-in identity",
				Action: r.AuthWhoami,
			},
		},
	}
}

// videosCommand handles catalog browsing
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Browse the video catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog videos",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "genre", Usage: "Filter by genre"},
					&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
					&cli.StringFlag{Name: "sort", Usage: "Sort expression, e.g. title,asc"},
				}, append(pageFlags, outputFlags()...)...),
				Action: r.VideosList,
			},
			{
				Name:  "search",
				Usage: "Search videos by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  append(pageFlags, outputFlags()...),
				Action: r.VideosSearch,
			},
			{
				Name:   "genres",
				Usage:  "List available genres",
				Flags:  outputFlags(),
				Action: r.VideosGenres,
			},
			{
				Name:  "show",
				Usage: "Show one video's details",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  outputFlags(),
				Action: r.VideosShow,
			},
			{
				Name:  "stream",
				Usage: "Print the playback URL for a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  outputFlags(),
				Action: r.VideosStream,
			},
		},
	}
}

// historyCommand handles watch-history operations
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "View and update watch history",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List watch history",
				Flags:  append(pageFlags, outputFlags()...),
				Action: r.HistoryList,
			},
			{
				Name:  "record",
				Usage: "Record playback progress for a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "position",
						Aliases:  []string{"pos"},
						Usage:    "Resume position in seconds",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "completed",
						Usage: "Mark the video as fully watched",
					},
				},
				Action: r.HistoryRecord,
			},
			{
				Name:  "complete",
				Usage: "Mark a video as completed",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.HistoryComplete,
			},
			{
				Name:  "delete",
				Usage: "Delete one history entry",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.HistoryDelete,
			},
			{
				Name:   "clear",
				Usage:  "Delete the entire watch history",
				Action: r.HistoryClear,
			},
		},
	}
}

// cacheCommand handles the local SQLite mirror of remote state
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Mirror remote state into the local database",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Sync watch history and catalog into the cache",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "history",
						Usage: "Sync watch history",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "catalog",
						Usage: "Sync the video catalog",
					},
					&cli.BoolFlag{
						Name:  "details",
						Usage: "Also fetch per-video metadata",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent detail fetchers",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "API requests per second",
						Value: 5.0,
					},
				},
				Action: r.CacheSync,
			},
			{
				Name:  "export",
				Usage: "Export the cache to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
				},
				Action: r.CacheExport,
			},
		},
	}
}

// commentsCommand handles comments on videos
func commentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "Read and write video comments",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List top-level comments on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
				},
				Flags:  append(pageFlags, outputFlags()...),
				Action: r.CommentsList,
			},
			{
				Name:  "replies",
				Usage: "List replies to a comment",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "comment-id"},
				},
				Flags:  append(pageFlags, outputFlags()...),
				Action: r.CommentsReplies,
			},
			{
				Name:  "add",
				Usage: "Comment on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Required: true,
					},
					&cli.IntFlag{
						Name:  "reply-to",
						Usage: "Parent comment ID for replies",
					},
				},
				Action: r.CommentsAdd,
			},
			{
				Name:  "edit",
				Usage: "Edit one of your comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "comment-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Required: true,
					},
				},
				Action: r.CommentsEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete one of your comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "comment-id"},
				},
				Action: r.CommentsDelete,
			},
		},
	}
}

// ratingsCommand handles star ratings
func ratingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "ratings",
		Usage: "Rate videos and view rating summaries",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Rate a video from 1 to 5",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "stars",
						Aliases:  []string{"s"},
						Required: true,
					},
				},
				Action: r.RatingsSet,
			},
			{
				Name:  "show",
				Usage: "Show a video's rating summary and your rating",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
				},
				Flags:  outputFlags(),
				Action: r.RatingsShow,
			},
			{
				Name:  "delete",
				Usage: "Remove your rating from a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
				},
				Action: r.RatingsDelete,
			},
		},
	}
}

// uploadCommand handles video uploads
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a video file with metadata",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "description"},
			&cli.StringFlag{Name: "genre"},
			&cli.StringSliceFlag{Name: "tag", Usage: "Repeatable tag flag"},
		},
		Action: r.Upload,
	}
}

// adminCommand handles administrative operations
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Administrative operations (requires ROLE_ADMIN)",
		Commands: []*cli.Command{
			{
				Name:  "users",
				Usage: "Manage user accounts",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List user accounts",
						Flags:  append(pageFlags, outputFlags()...),
						Action: r.AdminUsersList,
					},
					{
						Name:  "show",
						Usage: "Show one user account",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Flags:  outputFlags(),
						Action: r.AdminUsersShow,
					},
					{
						Name:  "roles",
						Usage: "Replace a user's roles",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Flags: []cli.Flag{
							&cli.StringSliceFlag{
								Name:     "role",
								Usage:    "Repeatable role flag, e.g. --role ROLE_USER",
								Required: true,
							},
						},
						Action: r.AdminUsersRoles,
					},
					{
						Name:  "activate",
						Usage: "Enable a user account",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Action: r.AdminUsersActivate,
					},
					{
						Name:  "deactivate",
						Usage: "Disable a user account",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Action: r.AdminUsersDeactivate,
					},
				},
			},
			{
				Name:  "videos",
				Usage: "Manage catalog videos",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all videos regardless of status",
						Flags:  append(pageFlags, outputFlags()...),
						Action: r.AdminVideosList,
					},
					{
						Name:  "status",
						Usage: "Change a video's status",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "to",
								Usage:    "Target status, e.g. READY or BLOCKED",
								Required: true,
							},
						},
						Action: r.AdminVideosStatus,
					},
					{
						Name:  "edit",
						Usage: "Update a video's metadata",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title"},
							&cli.StringFlag{Name: "description"},
							&cli.StringFlag{Name: "genre"},
							&cli.StringSliceFlag{Name: "tag"},
						},
						Action: r.AdminVideosEdit,
					},
					{
						Name:  "delete",
						Usage: "Delete a video",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Action: r.AdminVideosDelete,
					},
				},
			},
		},
	}
}

// payCommand handles the sandbox payment endpoint
func payCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pay",
		Usage: "Submit a test transaction",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "amount",
				Aliases:  []string{"a"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "plan",
				Usage:    "Subscription plan name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "card",
				Usage: "Card number (sandbox only)",
				Value: "4242424242424242",
			},
			&cli.StringFlag{
				Name:  "expiry",
				Usage: "Card expiry MM/YY",
				Value: "12/30",
			},
			&cli.StringFlag{
				Name:  "cvv",
				Value: "123",
			},
		},
		Action: r.PayTest,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls against the CloudFlix API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with a JSON body from stdin or --data",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Inline JSON body",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}

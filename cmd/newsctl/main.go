// Package main provides newsctl, a command-line admin client for the news API.
// Usage: newsctl <login|list|create|update|delete> [flags]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"news-portal/internal/client/admin"
	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/logging"
	envcfg "news-portal/pkg/config"
)

const usage = `Usage: newsctl <command> [flags]

Commands:
  login   -email E -password P        sign in and save the session
  list    [-page N] [-limit N] [-category C] [-sort S] [-output json]
  create  -title T -summary S -content C -category C -author A -image PATH [-video PATH] [-audio PATH]
  update  -id ID [field flags] [-image PATH] [-video PATH] [-audio PATH]
  delete  -id ID

Environment:
  NEWSCTL_API_URL     API base URL (default http://localhost:5000)
  NEWSCTL_TOKEN_FILE  where the session token is kept
`

func main() {
	initLogger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, out io.Writer) error {
	client, err := admin.NewClient(envcfg.GetEnvString("NEWSCTL_API_URL", "http://localhost:5000"))
	if err != nil {
		return err
	}
	tokens := tokenFile()
	if tok, err := os.ReadFile(tokens); err == nil {
		client.SetToken(strings.TrimSpace(string(tok)))
	}

	previews, err := admin.NewTempPreviewStore()
	if err != nil {
		return err
	}
	defer func() { _ = previews.Close() }()

	ctrl := admin.NewController(client, previews, &admin.State{})
	defer func() { printNotifications(ctrl.DrainNotifications()) }()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	switch cmd {
	case "login":
		return login(ctx, client, tokens, args, out)
	case "list":
		return list(ctx, ctrl, args, out)
	case "create":
		return submit(ctx, ctrl, false, args, out)
	case "update":
		return submit(ctx, ctrl, true, args, out)
	case "delete":
		return remove(ctx, ctrl, args)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func login(ctx context.Context, client *admin.Client, tokens string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("NEWSCTL_PASSWORD"), "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	client.SetToken("")
	user, err := client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := saveToken(tokens, client.Token()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

func list(ctx context.Context, ctrl *admin.Controller, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var q admin.Query
	fs.IntVar(&q.Page, "page", 0, "page number")
	fs.IntVar(&q.Limit, "limit", 0, "items per page")
	fs.StringVar(&q.Category, "category", "", "category filter (All for every category)")
	fs.StringVar(&q.Sort, "sort", "", "sort fields, e.g. -createdAt,title")
	output := fs.String("output", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := ctrl.Load(ctx, q); err != nil {
		return err
	}
	st := ctrl.State()

	if *output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"pagination": st.Page, "data": st.Articles})
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tCREATED\tTITLE")
	for _, a := range st.Articles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Category, a.CreatedAt.Format(time.DateOnly), a.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\npage %d/%d, %d total\n", st.Page.Page, st.Page.TotalPages, st.Page.Total)
	return nil
}

func submit(ctx context.Context, ctrl *admin.Controller, edit bool, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	id := fs.String("id", "", "article id (update only)")
	fields := map[string]*string{}
	for _, name := range []string{"title", "summary", "content", "category", "author"} {
		fields[name] = fs.String(name, "", name)
	}
	files := map[entity.MediaSlot]*string{}
	for _, slot := range entity.MediaSlots {
		files[slot] = fs.String(string(slot), "", string(slot)+" file path")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if edit {
		if *id == "" {
			return errors.New("-id is required")
		}
		// 既存値は送らない。指定されたフィールドだけ更新する
		ctrl.Edit(admin.Article{ID: *id})
	} else {
		ctrl.NewDraft()
	}

	for name, v := range fields {
		if err := ctrl.SetField(name, *v); err != nil {
			return err
		}
	}
	for slot, path := range files {
		if *path == "" {
			continue
		}
		if err := ctrl.Select(slot, *path); err != nil {
			ctrl.Discard()
			return err
		}
	}

	art, err := ctrl.Submit(ctx)
	if err != nil {
		ctrl.Discard()
		return err
	}
	fmt.Fprintf(out, "%s %s\n  title:    %s\n  category: %s\n  image:    %s\n", art.ID, verb(edit), art.Title, art.Category, art.ImageURL)
	return nil
}

func verb(edit bool) string {
	if edit {
		return "updated"
	}
	return "created"
}

func remove(ctx context.Context, ctrl *admin.Controller, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "article id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}
	return ctrl.Remove(ctx, *id)
}

func printNotifications(notes []admin.Notification) {
	for _, n := range notes {
		switch {
		case n.Field != "":
			fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", n.Level, n.Field, n.Message)
		default:
			fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Level, n.Message)
		}
	}
}

func tokenFile() string {
	if p := os.Getenv("NEWSCTL_TOKEN_FILE"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "newsctl", "token")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("server did not return a session")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// initLogger writes warnings and above to stderr unless LOG_LEVEL says otherwise.
func initLogger() {
	slog.SetDefault(logging.NewTextLogger(envcfg.GetEnvString("LOG_LEVEL", "warn")))
}

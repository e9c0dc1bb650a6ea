// Command halkit-demo runs a small hypermedia API that exercises the
// halkit router: negotiated JSON/HAL/text rendering, path parameters,
// the error taxonomy, and the bundled middleware.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/halkit/halkit"
	"github.com/halkit/halkit/config"
	"github.com/halkit/halkit/middleware"
	"github.com/halkit/halkit/server"
)

type cli struct {
	Addr     string     `help:"Listen address. Overrides SERVER_ADDR." default:""`
	LogLevel slog.Level `enum:"DEBUG,INFO,WARN,ERROR" default:"INFO" help:"Set the logging level."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("halkit-demo"),
		kong.Description("Demo hypermedia API built on halkit."),
		kong.UsageOnError(),
		kong.DefaultEnvars("HALKIT"),
	)

	log := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      c.LogLevel,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: "2006-01-02 15:04:05.000",
	}))
	slog.SetDefault(log)

	kctx.FatalIfErrorf(run(c, log))
}

func run(c cli, log *slog.Logger) error {
	var cfg server.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	router := newRouter(log)

	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("demo API listening", "addr", cfg.Addr)
	return srv.Run(ctx, router)()
}

type article struct {
	ID    string            `json:"id"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Links map[string]string `json:"_links,omitempty"`
}

func (a article) String() string {
	return fmt.Sprintf("%s: %s", a.ID, a.Title)
}

var articles = map[string]article{
	"1": {ID: "1", Title: "Hypermedia in practice", Body: "Links drive state."},
	"2": {ID: "2", Title: "Content negotiation", Body: "One resource, many shapes."},
}

func newRouter(log *slog.Logger) halkit.Router[*halkit.RequestContext] {
	router := halkit.NewRouter[*halkit.RequestContext](
		halkit.WithLogger[*halkit.RequestContext](log),
	)

	router.Use(middleware.RequestID[*halkit.RequestContext]())
	router.Use(middleware.LoggingWithLogger[*halkit.RequestContext](log))
	router.Use(middleware.RateLimit[*halkit.RequestContext](middleware.RateLimitConfig{
		Rate:  50,
		Burst: 100,
	}))

	router.Get("/", func(ctx *halkit.RequestContext) (any, error) {
		return map[string]any{
			"_links": map[string]string{
				"self":     "/",
				"articles": "/articles",
			},
		}, nil
	})

	router.Get("/articles", func(ctx *halkit.RequestContext) (any, error) {
		list := make([]article, 0, len(articles))
		for _, a := range articles {
			a.Links = map[string]string{"self": "/articles/" + a.ID}
			list = append(list, a)
		}
		return list, nil
	})

	router.Get("/articles/:id", func(ctx *halkit.RequestContext) (any, error) {
		a, ok := articles[ctx.Param("id")]
		if !ok {
			return nil, halkit.NotFound("article not found")
		}
		a.Links = map[string]string{
			"self":       "/articles/" + a.ID,
			"collection": "/articles",
		}
		return a, nil
	})

	router.Get("/teapot", func(ctx *halkit.RequestContext) (any, error) {
		return nil, halkit.APIError("I'm a teapot").WithStatus(418)
	})

	return router
}

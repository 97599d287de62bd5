package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/fitsearch/fitsearch-go/internal/action"
	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/config"
	"github.com/fitsearch/fitsearch-go/internal/domain"
	"github.com/fitsearch/fitsearch-go/internal/service"
	"github.com/fitsearch/fitsearch-go/internal/state"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	searchTerm = flag.String("search", "", "Run a one-shot product search and exit")
	trending   = flag.Bool("trending", false, "Show trending products and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Logger:  logger,
	})

	searchService := service.NewSearchService(client)
	chatService := service.NewChatService(client)
	locationService := service.NewLocationService(client)

	store := state.New()
	searchActions := action.NewSearchActions(store, searchService, logger)
	chatActions := action.NewChatActions(store, chatService, logger)
	locationActions := action.NewLocationActions(store, locationService, logger)

	ctx := context.Background()

	switch {
	case *searchTerm != "":
		searchActions.UpdateQuery(*searchTerm)
		searchActions.PerformSearch(ctx)
		printSearchState(store)
	case *trending:
		searchActions.LoadTrending(ctx, 0)
		printSearchState(store)
	default:
		runChat(ctx, store, chatActions, locationActions)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printSearchState(store *state.Store) {
	search := store.Search

	if errMsg := search.Error.Get(); errMsg != "" {
		color.Red("search failed: %s", errMsg)
		os.Exit(1)
	}

	results := search.Results.Get()
	color.Cyan("%d results (page %d of %d)",
		search.ResultsTotal.Get(), search.CurrentPage.Get(), search.TotalPages.Get())
	for _, p := range results {
		stock := color.GreenString("in stock")
		if !p.InStock {
			stock = color.RedString("out of stock")
		}
		fmt.Printf("  %-28s %-14s %8.2f %s  %s\n", p.Name, p.Brand, p.Price, p.Currency, stock)
	}
}

func runChat(ctx context.Context, store *state.Store, chat *action.ChatActions, location *action.LocationActions) {
	location.Detect(ctx)
	color.Cyan("fitsearch chat — shipping to %s. Type a request, /attach <url>, or /quit.",
		store.Location.CountryName.Get())

	scanner := bufio.NewScanner(os.Stdin)
	prompt := color.New(color.FgYellow).PrintfFunc()

	for {
		prompt("you> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return
		case line == "/new":
			chat.CreateNewConversation()
			color.Cyan("started %s", store.Chat.ConversationTitle.Get())
			continue
		case strings.HasPrefix(line, "/attach "):
			chat.AddAttachment(domain.AttachmentImage, strings.TrimSpace(strings.TrimPrefix(line, "/attach ")))
			color.Cyan("%d attachment(s) staged", len(store.Chat.PendingAttachments.Get()))
			continue
		}

		chat.UpdatePendingMessage(line)
		reply := chat.SendMessage(ctx)
		if reply == nil {
			if errMsg := store.Chat.Error.Get(); errMsg != "" {
				color.Red("error: %s", errMsg)
			}
			continue
		}

		color.White("bot> %s", reply.Content)
		for _, att := range reply.Attachments {
			if att.Type == domain.AttachmentProduct {
				fmt.Printf("     • %s (%s)\n", att.Title, att.Description)
			}
		}
	}
}

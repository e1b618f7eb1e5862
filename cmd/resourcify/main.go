package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/aun009/resourcify/internal/api"
	"github.com/aun009/resourcify/internal/chat"
	"github.com/aun009/resourcify/internal/config"
	"github.com/aun009/resourcify/internal/domain"
	"github.com/aun009/resourcify/internal/feed"
	"github.com/aun009/resourcify/internal/geo"
	"github.com/aun009/resourcify/internal/live"
	"github.com/aun009/resourcify/internal/market"
	"github.com/aun009/resourcify/internal/session"
	"github.com/aun009/resourcify/pkg/validator"
)

func main() {
	cfg := config.Load()

	email := flag.String("email", cfg.Email, "Account email (empty for anonymous browsing)")
	password := flag.String("password", cfg.Password, "Account password")
	lat := flag.Float64("lat", 0, "Viewer latitude for distance display")
	lon := flag.Float64("lon", 0, "Viewer longitude for distance display")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess := session.Anonymous()
	client := api.NewClient(cfg.ServerURL, sess, logger)
	client.SetTimeout(cfg.HTTPTimeout)

	if *email != "" {
		if errs := validator.ValidateLogin(*email, *password); errs.HasErrors() {
			logger.Fatal("invalid credentials", zap.Any("fields", errs))
		}
		if _, err := client.Login(ctx, *email, *password); err != nil {
			logger.Fatal("login failed", zap.Error(err))
		}
		// Canonical email from the backend fixes up any case drift.
		if _, err := client.Me(ctx); err != nil {
			logger.Warn("could not confirm identity", zap.Error(err))
		}
		logger.Info("logged in", zap.String("email", sess.Email()))
	} else {
		logger.Info("browsing anonymously; chat and posting disabled")
	}

	var viewer *geo.Point
	if *lat != 0 || *lon != 0 {
		viewer = &geo.Point{Lat: *lat, Lon: *lon}
	}

	store := market.NewStore()
	dispatcher := market.NewDispatcher(client, store, sess.Valid, logger)
	poller := market.NewPoller(dispatcher, cfg.PollInterval, logger)
	go poller.Run(ctx)

	conv := chat.NewConversation(sess.Email(), logger)

	var sub *live.Subscriber
	if sess.Valid() {
		sub = live.NewSubscriber(cfg.WSURL, sess, func(msg domain.Message) {
			if conv.ApplyPush(msg) {
				fmt.Printf("\n[%s] %s: %s\n> ", msg.Timestamp.Clock(), msg.Sender, msg.Content)
			}
			poller.Kick()
		}, logger)
		sub.SetRetryDelay(cfg.ReconnectDelay)
		if err := sub.Start(ctx); err != nil {
			logger.Warn("live channel unavailable", zap.Error(err))
		}
		defer sub.Close()
	}

	console := &console{
		ctx:        ctx,
		client:     client,
		sess:       sess,
		store:      store,
		dispatcher: dispatcher,
		conv:       conv,
		viewer:     viewer,
		stdin:      bufio.NewScanner(os.Stdin),
	}
	console.run()
}

type console struct {
	ctx        context.Context
	client     *api.Client
	sess       *session.Session
	store      *market.Store
	dispatcher *market.Dispatcher
	conv       *chat.Conversation
	viewer     *geo.Point
	stdin      *bufio.Scanner
}

// Confirm satisfies market.Confirmer with a terminal y/n prompt.
func (c *console) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !c.stdin.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.stdin.Text()))
	return answer == "y" || answer == "yes"
}

func (c *console) run() {
	fmt.Println("commands: tools | skills | activity | post <Tools|Skills> <REQUEST|OFFER> <item> | " +
		"offer/accept/reject <id> | complete <id> | delete <id> | clear | chat <email> | send <text> | quit")
	fmt.Print("> ")
	for c.stdin.Scan() {
		if c.ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(c.stdin.Text())
		if line != "" && !c.handle(line) {
			return
		}
		fmt.Print("> ")
	}
}

// handle runs one command; returns false to quit.
func (c *console) handle(line string) bool {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "quit", "exit":
		return false

	case "tools", "skills", "activity":
		c.printTab(strings.ToUpper(cmd[:1]) + cmd[1:])

	case "post":
		c.post(args)

	case "offer", "accept", "reject":
		if id, ok := parseID(args); ok {
			if err := c.dispatcher.Do(c.ctx, id, domain.Action(cmd)); err != nil {
				fmt.Println("action failed:", err)
			}
		}

	case "complete":
		if id, ok := parseID(args); ok {
			if err := c.dispatcher.Complete(c.ctx, id, c); err != nil {
				fmt.Println("action failed:", err)
			}
		}

	case "delete":
		if id, ok := parseID(args); ok {
			if err := c.dispatcher.Delete(c.ctx, id, c); err != nil {
				fmt.Println("delete failed:", err)
			}
		}

	case "clear":
		if err := c.dispatcher.ClearActivity(c.ctx, c); err != nil {
			fmt.Println("clear failed:", err)
		}

	case "chat":
		c.openChat(args)

	case "send":
		c.send(strings.Join(args, " "))

	default:
		fmt.Println("unknown command:", cmd)
	}
	return true
}

func (c *console) printTab(tab string) {
	public := feed.Build(c.store.Public(), c.viewer)
	mine := feed.Build(c.store.Mine(), c.viewer)
	cards := feed.ForTab(tab, public, mine)
	if len(cards) == 0 {
		fmt.Println("no items for", tab)
		return
	}
	for _, card := range cards {
		req := card.Request
		name := "Unknown"
		if req.Requester != nil {
			name = req.Requester.Name
		}
		fmt.Printf("#%d %-10s %-20s %s by %s, %s away, %s\n",
			req.ID, req.Intent, req.Item, req.Status, name, card.Distance, card.Posted)
	}
}

func (c *console) post(args []string) {
	if len(args) < 3 {
		fmt.Println("usage: post <Tools|Skills> <REQUEST|OFFER> <item>")
		return
	}
	itemType, intent, item := args[0], args[1], strings.Join(args[2:], " ")
	if errs := validator.ValidatePost(item, itemType, intent); errs.HasErrors() {
		fmt.Println("invalid post:", errs)
		return
	}
	req := api.NewRequest{Item: item, Type: itemType, Intent: intent}
	if c.viewer != nil {
		req.Latitude, req.Longitude = &c.viewer.Lat, &c.viewer.Lon
	}
	if _, err := c.client.PostRequest(c.ctx, req); err != nil {
		fmt.Println("post failed:", err)
		return
	}
	c.dispatcher.RefreshBoth(c.ctx)
	fmt.Println("posted")
}

func (c *console) openChat(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: chat <email>")
		return
	}
	if !c.sess.Valid() {
		fmt.Println("log in to chat")
		return
	}
	partner := domain.Identity{Email: args[0], Name: args[0]}
	c.conv.Switch(partner)
	if err := c.conv.Refresh(c.ctx, c.client); err != nil {
		fmt.Println("history unavailable:", err)
	}
	for _, msg := range c.conv.Messages() {
		fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Clock(), msg.Sender, msg.Content)
	}
}

func (c *console) send(content string) {
	partner, open := c.conv.Partner()
	if !open {
		fmt.Println("open a conversation first: chat <email>")
		return
	}
	if errs := validator.ValidateMessage(partner.Email, content); errs.HasErrors() {
		fmt.Println("invalid message:", errs)
		return
	}
	c.conv.Send(c.ctx, c.client, content)
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		fmt.Println("expected a request id")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("bad request id:", args[0])
		return 0, false
	}
	return id, true
}

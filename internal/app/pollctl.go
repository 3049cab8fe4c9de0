package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samvad-hq/samvad-poll-client/internal/config"
	"github.com/samvad-hq/samvad-poll-client/internal/credstore"
	"github.com/samvad-hq/samvad-poll-client/internal/logger"
	"github.com/samvad-hq/samvad-poll-client/internal/targets"
	"github.com/samvad-hq/samvad-poll-client/pkg/pollapi"
	"github.com/samvad-hq/samvad-poll-client/pkg/sinks"
)

// Pollctl wires together the target registry, credential store,
// diagnostics sinks, and the API client, and dispatches one subcommand.
type Pollctl struct {
	cfg    *config.Config
	target targets.Target
	creds  credstore.Store
	client *pollapi.Client
	fanout *sinks.Fanout
	log    logger.Logger
	out    io.Writer
}

// NewPollctl builds the CLI runtime from config files.
func NewPollctl(ctx context.Context, cfg *config.Config, log logger.Logger) (*Pollctl, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target, err := resolveTarget(cfg, log)
	if err != nil {
		return nil, err
	}

	fanout, err := buildSinks(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	creds, err := credstore.NewStore(cfg.CredStoreType, cfg.CredStorePath, credstore.Options{
		TokenTTL:        cfg.TokenTTL,
		CleanupInterval: cfg.CredStoreCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("open credstore: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		stored, ok, err := creds.Token(target.ID)
		if err != nil {
			creds.Close()
			return nil, fmt.Errorf("read stored token: %w", err)
		}
		if ok {
			token = stored
		}
	}

	client := pollapi.NewClient(target.BaseURL,
		pollapi.WithToken(token),
		pollapi.WithTimeout(target.Timeout()),
		pollapi.WithLogger(log),
		pollapi.WithSink(fanout),
	)

	return &Pollctl{
		cfg:    cfg,
		target: target,
		creds:  creds,
		client: client,
		fanout: fanout,
		log:    log,
		out:    os.Stdout,
	}, nil
}

// resolveTarget loads the targets registry and picks the configured
// target. A missing registry file falls back to a local deployment.
func resolveTarget(cfg *config.Config, log logger.Logger) (targets.Target, error) {
	if _, err := os.Stat(cfg.TargetsFile); err != nil {
		log.WarnObj("targets file not found, using local default", "targets_file", cfg.TargetsFile)
		return targets.Target{
			ID:             "local",
			Name:           "Local deployment",
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: int(cfg.TimeoutSeconds),
		}, nil
	}

	if err := targets.LoadTargets(cfg.TargetsFile); err != nil {
		return targets.Target{}, fmt.Errorf("load targets registry: %w", err)
	}

	target, ok := targets.TargetByID(cfg.Target)
	if !ok {
		return targets.Target{}, fmt.Errorf("target %q not found in %s", cfg.Target, cfg.TargetsFile)
	}
	return target, nil
}

// buildSinks loads the sink registry and assembles the fanout. A
// missing registry file yields a log-only fanout.
func buildSinks(ctx context.Context, cfg *config.Config, log logger.Logger) (*sinks.Fanout, error) {
	if _, err := os.Stat(cfg.SinksFile); err != nil {
		s, _ := sinks.DefaultRegistry().SinkFor(ctx, sinks.SinkConfig{ID: "default-log", Type: sinks.TypeLog}, log)
		return sinks.NewFanout([]sinks.Sink{s}), nil
	}

	sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}

	enabled := sinkReg.Enabled()
	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	log.InfoObj("sinks registry loaded", "sinks", enabled)

	return sinks.NewFanout(built), nil
}

// Close releases held resources.
func (p *Pollctl) Close() error {
	if p == nil || p.creds == nil {
		return nil
	}
	return p.creds.Close()
}

// Run dispatches a single subcommand.
func (p *Pollctl) Run(ctx context.Context, args []string) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("pollctl is not initialized")
	}
	if len(args) == 0 {
		p.usage()
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "register":
		return p.runRegister(ctx, args[1:])
	case "create":
		return p.runCreate(ctx, args[1:])
	case "polls":
		return p.runPolls(ctx, args[1:])
	case "results":
		return p.runResults(ctx, args[1:])
	case "vote":
		return p.runVote(ctx, args[1:])
	case "token":
		return p.runToken(args[1:])
	default:
		p.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (p *Pollctl) usage() {
	fmt.Fprintf(p.out, `Usage: pollctl <command> [args]

Commands:
  register <username> <password>     register a new user
  create <question> <option>...      create a poll (requires token)
  polls [skip] [limit]               list polls
  results <poll-id>                  fetch poll results
  vote <poll-id> <option-id>         vote on a poll (requires token)
  token set <value> | show | clear   manage the stored bearer token
`)
}

func (p *Pollctl) runRegister(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("register requires <username> <password>")
	}

	user, err := p.client.Register(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	fmt.Fprintf(p.out, "registered user %q (id %d)\n", user.Username, user.ID)
	return nil
}

func (p *Pollctl) runCreate(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("create requires <question> and at least two options")
	}

	poll, err := p.client.CreatePoll(ctx, args[0], args[1:])
	if err != nil {
		return fmt.Errorf("create poll: %w", err)
	}

	fmt.Fprintf(p.out, "created poll %d: %s\n", poll.ID, poll.Question)
	for _, opt := range poll.Options {
		fmt.Fprintf(p.out, "  [%d] %s\n", opt.ID, opt.Text)
	}
	return nil
}

func (p *Pollctl) runPolls(ctx context.Context, args []string) error {
	skip, limit := 0, 10
	var err error
	if len(args) > 0 {
		if skip, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid skip %q", args[0])
		}
	}
	if len(args) > 1 {
		if limit, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid limit %q", args[1])
		}
	}

	polls, err := p.client.Polls(ctx, skip, limit)
	if err != nil {
		return fmt.Errorf("fetch polls: %w", err)
	}

	fmt.Fprintf(p.out, "%d polls\n", len(polls))
	for _, poll := range polls {
		fmt.Fprintf(p.out, "  %d: %s (%d options, created %s)\n",
			poll.ID, poll.Question, len(poll.Options), poll.CreatedAt)
	}
	return nil
}

func (p *Pollctl) runResults(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("results requires <poll-id>")
	}
	pollID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || pollID <= 0 {
		return fmt.Errorf("invalid poll id %q", args[0])
	}

	results, err := p.client.PollResults(ctx, pollID)
	if err != nil {
		return fmt.Errorf("fetch poll results: %w", err)
	}

	fmt.Fprintf(p.out, "poll %d: %s (created %s)\n", results.ID, results.Question, results.CreatedAt)
	for _, opt := range results.Options {
		fmt.Fprintf(p.out, "  %s: %d votes\n", opt.Text, opt.VoteCount)
	}
	return nil
}

func (p *Pollctl) runVote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("vote requires <poll-id> <option-id>")
	}
	pollID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || pollID <= 0 {
		return fmt.Errorf("invalid poll id %q", args[0])
	}
	optionID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || optionID <= 0 {
		return fmt.Errorf("invalid option id %q", args[1])
	}

	vote, err := p.client.Vote(ctx, pollID, optionID)
	if err != nil {
		return fmt.Errorf("cast vote: %w", err)
	}

	fmt.Fprintf(p.out, "vote %d recorded: user %d voted for option %d at %s\n",
		vote.ID, vote.UserID, vote.OptionID, vote.CreatedAt)
	return nil
}

func (p *Pollctl) runToken(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("token requires set|show|clear")
	}

	switch args[0] {
	case "set":
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return fmt.Errorf("token set requires a non-empty value")
		}
		if err := p.creds.SetToken(p.target.ID, args[1]); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		fmt.Fprintf(p.out, "token stored for target %q\n", p.target.ID)
		return nil
	case "show":
		token, ok, err := p.creds.Token(p.target.ID)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if !ok {
			fmt.Fprintf(p.out, "no token stored for target %q\n", p.target.ID)
			return nil
		}
		fmt.Fprintf(p.out, "%s\n", token)
		return nil
	case "clear":
		if err := p.creds.DeleteToken(p.target.ID); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		fmt.Fprintf(p.out, "token cleared for target %q\n", p.target.ID)
		return nil
	default:
		return fmt.Errorf("unknown token subcommand %q", args[0])
	}
}

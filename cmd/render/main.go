// Command render turns one recorded round of a game into a video: it
// fetches the gamelog, parses the requested round, composes one frame
// per turn, and assembles the frames into an mp4.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/kekule-games/roundrender/internal/catalog"
	"github.com/kekule-games/roundrender/internal/pipeline"
	"github.com/kekule-games/roundrender/internal/render"
	"github.com/kekule-games/roundrender/internal/replay"
	"github.com/kekule-games/roundrender/internal/store"
	"github.com/kekule-games/roundrender/internal/video"
)

const (
	minRound = 1
	maxRound = 11
)

type options struct {
	gameID     int
	roundID    int
	speed      int
	dark       bool
	offline    bool
	strict     bool
	workers    int
	framesDir  string
	logPath    string
	outPath    string
	copyReport bool
}

func main() {
	var opts options
	flag.IntVar(&opts.speed, "speed", 100, "playback speed percentage (affects frame rate)")
	flag.BoolVar(&opts.dark, "dark", false, "render with the dark theme")
	flag.BoolVar(&opts.offline, "offline", false, "skip catalog and object-store calls; requires -log")
	flag.BoolVar(&opts.strict, "strict", false, "abort on the first out-of-bounds token instead of skipping up to 3 turns")
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "frame compositing workers")
	flag.StringVar(&opts.framesDir, "frames-dir", "", "also dump per-turn PNG frames into this directory")
	flag.StringVar(&opts.logPath, "log", "", "local gamelog path (offline mode)")
	flag.StringVar(&opts.outPath, "o", "", "output video path (default {game}_{round}.mp4)")
	flag.BoolVar(&opts.copyReport, "copy-report", false, "copy the run summary to the clipboard")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: render [flags] <game-id> <round-id>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	gameID, err := strconv.Atoi(flag.Arg(0))
	if err != nil || gameID < 0 {
		fmt.Printf("error: %q is not a valid game id\n", flag.Arg(0))
		os.Exit(2)
	}
	roundID, err := strconv.Atoi(flag.Arg(1))
	if err != nil || roundID < minRound || roundID > maxRound {
		fmt.Printf("error: round id must be in %d..%d, got %q\n", minRound, maxRound, flag.Arg(1))
		os.Exit(2)
	}
	if opts.speed <= 0 {
		fmt.Println("error: -speed must be > 0")
		os.Exit(2)
	}
	if opts.offline && opts.logPath == "" {
		fmt.Println("error: -offline requires -log")
		os.Exit(2)
	}
	opts.gameID = gameID
	opts.roundID = roundID

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(context.Background(), opts, logger); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	legend := render.Legend{
		Title:   fmt.Sprintf("Game %d / Round %d", opts.gameID, opts.roundID),
		Player1: "Blue",
		Player2: "Red",
	}

	var (
		cat     *catalog.Client
		st      *store.Store
		logText []byte
	)
	if opts.offline {
		data, err := os.ReadFile(opts.logPath)
		if err != nil {
			return fmt.Errorf("read gamelog: %w", err)
		}
		logText = data
	} else {
		cat = catalog.New(apiBase(), os.Getenv("GAMELIST_API_KEY"))
		info, err := cat.GameInfo(ctx, opts.gameID)
		if err != nil {
			return err
		}
		if !info.Exists {
			return fmt.Errorf("game %d does not exist on the system", opts.gameID)
		}
		legend.Player1 = info.Player1
		legend.Player2 = info.Player2

		st, err = store.New(storeConfig())
		if err != nil {
			return err
		}
		logText, err = st.FetchGamelog(ctx, opts.gameID)
		if err != nil {
			return err
		}
	}

	policy := replay.LenientBounds(3)
	if opts.strict {
		policy = replay.StrictBounds()
	}
	parser := replay.NewParser(
		replay.WithBoundsPolicy(policy),
		replay.WithLogger(logger),
	)
	round, err := parser.ParseRound(string(logText), opts.roundID)
	if err != nil {
		return err
	}
	if round.Len() == 0 {
		return fmt.Errorf("round %d contains no turns", opts.roundID)
	}

	theme := render.LightTheme()
	if opts.dark {
		theme = render.DarkTheme()
	}
	composer, err := render.NewComposer(theme)
	if err != nil {
		return err
	}

	outPath := opts.outPath
	if outPath == "" {
		outPath = fmt.Sprintf("%d_%d.mp4", opts.gameID, opts.roundID)
	}
	sink, err := video.NewFFmpegAssembler(outPath,
		render.FrameWidth, render.FrameHeight, video.FrameRate(opts.speed))
	if err != nil {
		return err
	}

	popts := []pipeline.Option{
		pipeline.WithWorkers(opts.workers),
		pipeline.WithLogger(logger),
	}
	if opts.framesDir != "" {
		if err := os.MkdirAll(opts.framesDir, 0o755); err != nil {
			return err
		}
		popts = append(popts, pipeline.WithFramesDir(opts.framesDir))
	}

	res, err := pipeline.New(composer, sink, popts...).Render(ctx, round, legend)
	if err != nil {
		sink.Close()
		os.Remove(outPath)
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	// Write-back failures are warnings: the video already exists.
	if !opts.offline {
		if err := st.PutVideo(ctx, opts.gameID, opts.roundID, outPath); err != nil {
			logger.Warn("video upload failed", "err", err)
		}
		if err := cat.MarkRendered(ctx, opts.gameID, opts.roundID); err != nil {
			logger.Warn("marking round rendered failed", "err", err)
		}
	}

	summary := buildSummary(opts, theme, res, parser.Warnings(), outPath)
	fmt.Print(summary)
	if opts.copyReport {
		if err := clipboard.WriteAll(summary); err != nil {
			logger.Warn("clipboard copy failed", "err", err)
		}
	}
	return nil
}

func buildSummary(opts options, theme render.Theme, res *pipeline.Result, warnings []replay.Warning, outPath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Round Render Report ===\n")
	fmt.Fprintf(&b, "game=%d round=%d speed=%d%% theme=%s workers=%d\n",
		opts.gameID, opts.roundID, opts.speed, theme.Name, opts.workers)
	fmt.Fprintf(&b, "turns rendered: %d\n", res.Turns)
	fmt.Fprintf(&b, "final totals:   blue=%d red=%d\n", res.BlueTotal, res.RedTotal)
	if len(warnings) > 0 {
		fmt.Fprintf(&b, "skipped turns:  %d\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(&b, "  %s\n", w)
		}
	}
	fmt.Fprintf(&b, "output: %s (%.1fs)\n", outPath, res.Elapsed.Seconds())
	return b.String()
}

func apiBase() string {
	if v := os.Getenv("GAMELIST_API_URL"); v != "" {
		return v
	}
	return "https://kekule.games/GL/API/Gamelist"
}

func storeConfig() store.Config {
	cfg := store.Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Secure:    os.Getenv("S3_INSECURE") == "",
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "s3.amazonaws.com"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "kekule-web-private"
	}
	return cfg
}

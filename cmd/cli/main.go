package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"

	"github.com/thenewact/apple-music-lyrics/internal/audio"
	"github.com/thenewact/apple-music-lyrics/internal/config"
	"github.com/thenewact/apple-music-lyrics/internal/lyrics"
	"github.com/thenewact/apple-music-lyrics/internal/scroll"
	"github.com/thenewact/apple-music-lyrics/internal/session"
	"github.com/thenewact/apple-music-lyrics/internal/timing"
	"github.com/thenewact/apple-music-lyrics/pkg/logger"
	"github.com/thenewact/apple-music-lyrics/pkg/lyricsync"
)

// Global flags
var (
	cachePath  string
	configPath string
	tempDir    string
)

func init() {
	flag.StringVar(&cachePath, "cache", getEnvOrDefault("LYRIC_CACHE_PATH", "lyriccache.sqlite3"), "Path to the SQLite lyrics cache")
	flag.StringVar(&configPath, "config", getEnvOrDefault("LYRIC_CONFIG_PATH", ""), "Path to the player YAML config")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("LYRIC_TEMP_DIR", os.TempDir()), "Directory for temporary audio conversions")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func createService() (lyricsync.Service, error) {
	return lyricsync.NewService(
		lyricsync.WithCachePath(cachePath),
		lyricsync.WithTempDir(tempDir),
	)
}

func main() {
	log := logger.GetLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Debugf("Executing command: %s", command)

	switch command {
	case "parse":
		handleParse()
	case "import":
		handleImport()
	case "load":
		handleLoad()
	case "show":
		handleShow()
	case "export":
		handleExport()
	case "simulate":
		handleSimulate()
	case "fetch":
		handleFetch()
	case "tracks":
		handleTracks()
	case "delete":
		handleDelete()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: lyricsync <command> [arguments]

Commands:
  parse <lyrics_file> [--format lrc|vtt|json]   parse lyrics and print the segments
  import <audio_file> [--title t] [--artist a]  register a track in the cache
  load <key> <lyrics_file> [--format ...]       parse lyrics and cache them for a track
  show <key>                                    print a track's cached segments
  export <key>                                  copy a track's transcript to the clipboard
  simulate <key> [--speed 1.0]                  run a live sync session against a wall clock
  fetch <youtube_url>                           download a track's audio with yt-dlp
  tracks                                        list cached tracks
  delete <key>                                  remove a track from the cache`)
}

// splitArgs separates leading positional arguments from trailing flags, the
// way every subcommand here expects them.
func splitArgs(args []string) (positional, flags []string) {
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

func handleParse() {
	positional, flagArgs := splitArgs(os.Args[2:])
	parseCmd := flag.NewFlagSet("parse", flag.ExitOnError)
	format := parseCmd.String("format", "", "Lyrics format (lrc, vtt, json); sniffed when empty")
	parseCmd.Parse(flagArgs)

	if len(positional) < 1 {
		fmt.Println("Error: lyrics file required")
		os.Exit(1)
	}

	raw, err := os.ReadFile(positional[0])
	if err != nil {
		logger.Fatalf("Reading lyrics file: %v", err)
	}

	f := lyrics.Format(*format)
	if *format == "" {
		f = lyrics.DetectFormat(string(raw))
	}
	segs := lyrics.Parse(string(raw), f)

	fmt.Printf("Parsed %s segments (%s, format %s)\n",
		humanize.Comma(int64(len(segs))), humanize.Bytes(uint64(len(raw))), f)
	for _, s := range segs {
		end := "open"
		if s.HasEnd() {
			end = formatMs(s.EndMs)
		}
		fmt.Printf("  [%s - %s] %s\n", formatMs(s.StartMs), end, s.Text)
	}
}

func handleImport() {
	positional, flagArgs := splitArgs(os.Args[2:])
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	title := importCmd.String("title", "", "Track title")
	artist := importCmd.String("artist", "", "Artist name")
	importCmd.Parse(flagArgs)

	if len(positional) < 1 {
		fmt.Println("Error: audio file required")
		os.Exit(1)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	info, err := svc.ImportTrack(ctx, positional[0], *title, *artist)
	if err != nil {
		logger.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Imported %q (key %s, %s)\n", info.Title, info.Key,
		(time.Duration(info.DurationMs) * time.Millisecond).Round(time.Second))
}

func handleLoad() {
	positional, flagArgs := splitArgs(os.Args[2:])
	loadCmd := flag.NewFlagSet("load", flag.ExitOnError)
	format := loadCmd.String("format", "", "Lyrics format (lrc, vtt, json); sniffed when empty")
	loadCmd.Parse(flagArgs)

	if len(positional) < 2 {
		fmt.Println("Error: track key and lyrics file required")
		os.Exit(1)
	}

	raw, err := os.ReadFile(positional[1])
	if err != nil {
		logger.Fatalf("Reading lyrics file: %v", err)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	segs, err := svc.LoadLyrics(context.Background(), positional[0], string(raw), lyricsync.Format(*format))
	if err != nil {
		logger.Fatalf("Loading lyrics: %v", err)
	}
	fmt.Printf("Cached %s segments for %s\n", humanize.Comma(int64(len(segs))), positional[0])
}

func handleShow() {
	if len(os.Args) < 3 {
		fmt.Println("Error: track key required")
		os.Exit(1)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	segs, ok := svc.CachedLyrics(os.Args[2])
	if !ok {
		fmt.Printf("No cached lyrics for %s\n", os.Args[2])
		return
	}
	for _, s := range segs {
		fmt.Printf("  %-10s %s\n", formatMs(s.StartMs), s.Text)
	}
}

func handleExport() {
	if len(os.Args) < 3 {
		fmt.Println("Error: track key required")
		os.Exit(1)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	segs, ok := svc.CachedLyrics(os.Args[2])
	if !ok {
		fmt.Printf("No cached lyrics for %s\n", os.Args[2])
		return
	}

	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Text)
		sb.WriteByte('\n')
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		logger.Fatalf("Copying to clipboard: %v", err)
	}
	fmt.Printf("Copied %s lines to clipboard\n", humanize.Comma(int64(len(segs))))
}

// wallClock drives a simulated playback position from the wall clock, for
// demoing a sync session without an audio backend.
type wallClock struct {
	start time.Time
	speed float64
}

func (c *wallClock) CurrentTimeMs() (float64, bool) {
	return float64(time.Since(c.start).Milliseconds()) * c.speed, true
}
func (c *wallClock) Seek(ms float64) {
	c.start = time.Now().Add(-time.Duration(ms/c.speed) * time.Millisecond)
}
func (c *wallClock) Play()  {}
func (c *wallClock) Pause() {}

func handleSimulate() {
	positional, flagArgs := splitArgs(os.Args[2:])
	simCmd := flag.NewFlagSet("simulate", flag.ExitOnError)
	speed := simCmd.Float64("speed", 1.0, "Playback speed multiplier")
	duration := simCmd.Duration("for", 30*time.Second, "How long to run the simulation")
	simCmd.Parse(flagArgs)

	if len(positional) < 1 {
		fmt.Println("Error: track key required")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("Loading config: %v", err)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	cached, ok := svc.CachedLyrics(positional[0])
	if !ok {
		fmt.Printf("No cached lyrics for %s\n", positional[0])
		os.Exit(1)
	}

	segs := make([]lyrics.Segment, 0, len(cached))
	for _, s := range cached {
		seg := lyrics.Segment{ID: s.ID, StartMs: s.StartMs, EndMs: s.EndMs, Text: s.Text}
		for _, w := range s.Words {
			seg.Words = append(seg.Words, lyrics.Word(w))
		}
		segs = append(segs, seg)
	}

	core := timing.NewCore()
	core.SetOffset(cfg.OffsetMs)
	if cfg.RespectEndTimes {
		core.SetPolicy(timing.PolicyRespectEnd)
	}

	controller := scroll.NewController(scroll.Viewport{
		ItemHeightPx:     cfg.ItemHeightPx,
		ViewportHeightPx: cfg.ViewportHeightPx,
		OverscanCount:    cfg.Overscan,
	}, len(segs))
	controller.SetScrollDuration(time.Duration(cfg.ScrollDurationMs) * time.Millisecond)
	controller.SetAutoScroll(cfg.AutoScroll)

	sess := session.New(core, controller)
	sess.SetSegments(segs)
	sess.OnIndexChange(func(ch session.IndexChange) {
		if ch.Segment == nil {
			return
		}
		r := controller.VisibleRange()
		fmt.Printf("%-10s %-40q rows %d-%d\n", formatMs(ch.Segment.StartMs), ch.Segment.Text, r.Start, r.End)
	})
	sess.AttachClock(&wallClock{start: time.Now(), speed: *speed})

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	defer sess.Close()

	fmt.Printf("Simulating %s segments at %.1fx for %s\n",
		humanize.Comma(int64(len(segs))), *speed, *duration)
	sess.Run(ctx, session.DefaultFrameInterval)
	fmt.Printf("Mean drift: %.1f ms over %d samples\n", core.MeanDrift(), len(core.DriftSamples()))
}

func handleFetch() {
	if len(os.Args) < 3 {
		fmt.Println("Error: YouTube URL required")
		os.Exit(1)
	}
	url := os.Args[2]
	if !audio.IsYouTubeURL(url) {
		fmt.Printf("Not a YouTube URL: %s\n", url)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := audio.InstallYtDlp(ctx); err != nil {
		logger.Fatalf("Installing yt-dlp: %v", err)
	}

	path, meta, err := audio.DownloadYouTubeAudio(ctx, url, tempDir)
	if err != nil {
		logger.Fatalf("Download failed: %v", err)
	}
	fmt.Printf("Downloaded %q by %s to %s\n", meta.Title, meta.Artist, path)
}

func handleTracks() {
	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	tracks, err := svc.Tracks()
	if err != nil {
		logger.Fatalf("Listing tracks: %v", err)
	}
	if len(tracks) == 0 {
		fmt.Println("Cache is empty")
		return
	}
	for _, t := range tracks {
		fmt.Printf("  %-30s %s - %s (%s)\n", t.Key, t.Artist, t.Title,
			(time.Duration(t.DurationMs) * time.Millisecond).Round(time.Second))
	}
}

func handleDelete() {
	if len(os.Args) < 3 {
		fmt.Println("Error: track key required")
		os.Exit(1)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("Creating service: %v", err)
	}
	defer svc.Close()

	if err := svc.DeleteTrack(os.Args[2]); err != nil {
		logger.Fatalf("Delete failed: %v", err)
	}
	fmt.Printf("Deleted %s\n", os.Args[2])
}

func formatMs(ms int64) string {
	return fmt.Sprintf("%02d:%06.3f", ms/60000, float64(ms%60000)/1000)
}

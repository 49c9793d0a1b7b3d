package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/chromedp/chromedp"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MalvinJazz/fresh-news-robot/browser"
	"github.com/MalvinJazz/fresh-news-robot/config"
	"github.com/MalvinJazz/fresh-news-robot/logging"
	"github.com/MalvinJazz/fresh-news-robot/search"
	"github.com/MalvinJazz/fresh-news-robot/workitems"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// options are the effective run settings after merging flags, environment
// variables, and the optional config file.
type options struct {
	outDir  string
	siteURL string
	headed  bool
	logFile string
	debug   bool
}

// merge layers the file config underneath anything the user already chose.
// explicit holds the flag names passed on the command line, so an explicit
// value always wins over the file even when it equals the built-in default;
// envOut is the raw ROBOT_ARTIFACTS value, which likewise outranks the file.
func (o *options) merge(fileCfg *config.FileConfig, explicit map[string]bool, envOut string) {
	if fileCfg == nil {
		return
	}
	if fileCfg.Output.Dir != "" && !explicit["out"] && envOut == "" {
		o.outDir = fileCfg.Output.Dir
	}
	if fileCfg.Site.URL != "" && !explicit["site"] {
		o.siteURL = fileCfg.Site.URL
	}
	if fileCfg.Browser.Headed && !explicit["headed"] {
		o.headed = true
	}
	if fileCfg.Log.File != "" && !explicit["log-file"] {
		o.logFile = fileCfg.Log.File
	}
	if fileCfg.Log.Debug && !explicit["debug"] {
		o.debug = true
	}
}

func main() {
	// Best-effort .env loading for local runs; the automation runner sets
	// real environment variables in production.
	_ = godotenv.Load()

	configPath := flag.String("config", getEnv("FRESHNEWS_CONFIG", "robot.yaml"), "Path to optional YAML config file (FRESHNEWS_CONFIG)")
	outDir := flag.String("out", getEnv("ROBOT_ARTIFACTS", "output"), "Run output directory (ROBOT_ARTIFACTS)")
	workitemsPath := flag.String("workitems", os.Getenv(workitems.EnvInputPath), "Path to work items input file (RC_WORKITEM_INPUT_PATH)")
	siteURL := flag.String("site", "", "Override the site entry URL")
	headed := flag.Bool("headed", false, "Run the browser with a visible window")
	logFile := flag.String("log-file", "", "Also write JSON logs to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fileCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	opts := options{
		outDir:  *outDir,
		siteURL: *siteURL,
		headed:  *headed,
		logFile: *logFile,
		debug:   *debug,
	}
	opts.merge(fileCfg, explicit, os.Getenv("ROBOT_ARTIFACTS"))

	logger := logging.New(opts.logFile, opts.debug)
	defer logger.Sync()

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		logger.Fatal("failed to create output directory", zap.Error(err))
	}

	inputs, err := workitems.Load(*workitemsPath)
	if err != nil {
		logger.Fatal("failed to load work items", zap.Error(err))
	}
	item := inputs.Current()
	params := workitems.ParametersFrom(item)
	logger.Info("starting search run",
		zap.String("workitem", item.ID.String()),
		zap.String("phrase", params.Phrase),
		zap.Int("months", params.Months),
		zap.String("topic", params.Topic))

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.headed),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	siteCfg := search.LATimesConfig()
	if opts.siteURL != "" {
		siteCfg.URL = opts.siteURL
	}

	strategy := search.NewLATimes(siteCfg, opts.outDir, logger)
	searcher := search.NewSearcher(strategy, browser.NewChrome(tabCtx), opts.outDir, logger)

	if err := searcher.Search(params); err != nil {
		logger.Fatal("search run failed", zap.Error(err))
	}
	logger.Info("search run finished")
}

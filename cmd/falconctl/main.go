package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
	"github.com/opengovern/falcon-bridge/utils"
)

var (
	// Global flags
	configFile string
	baseURL    string
	debug      bool

	// Operations flags
	tag      string
	specFile string

	// Command flags
	params     []string
	bodyFile   string
	expand     bool
	outputFile string

	// Sensor flags
	image     string
	imageTag  string
	outputDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "falconctl",
		Short:   "falconctl - CrowdStrike Falcon API client",
		Long:    "falconctl calls any operation of the CrowdStrike Falcon API and works with the sensor image registry.",
		Version: falconbridge.Version,
	}

	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "List known Falcon clouds",
		RunE:  runRegions,
	}

	operationsCmd := &cobra.Command{
		Use:   "operations",
		Short: "List operation ids",
		RunE:  runOperations,
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Request an access token",
		RunE:  runToken,
	}

	commandCmd := &cobra.Command{
		Use:   "command [operation_id]",
		Short: "Call one operation by id",
		Long:  "Call one operation by id. Use --param name=value for query, path and form parameters.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommand,
	}

	sensorTagsCmd := &cobra.Command{
		Use:   "sensor-tags",
		Short: "List published tags of a sensor image",
		RunE:  runSensorTags,
	}

	sensorPullCmd := &cobra.Command{
		Use:   "sensor-pull",
		Short: "Pull a sensor image into a directory",
		RunE:  runSensorPull,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (default: FALCON_* environment)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL or region (US-1, US-2, EU-1, US-GOV-1)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log redacted API activity")

	operationsCmd.Flags().StringVar(&tag, "tag", "", "Only list operations with this tag")
	operationsCmd.Flags().StringVar(&specFile, "spec", "", "Also load operations from an OpenAPI document")

	commandCmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter as name=value (repeatable)")
	commandCmd.Flags().StringVar(&bodyFile, "body", "", "JSON file sent as the request body")
	commandCmd.Flags().BoolVar(&expand, "expand", false, "Wrap binary responses in an envelope")
	commandCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write binary responses to this file")

	sensorTagsCmd.Flags().StringVar(&image, "image", utils.FalconSensor, "Sensor image name")
	sensorPullCmd.Flags().StringVar(&image, "image", utils.FalconSensor, "Sensor image name")
	sensorPullCmd.Flags().StringVar(&imageTag, "tag", "", "Image tag (default: newest)")
	sensorPullCmd.Flags().StringVar(&outputDir, "dir", ".", "Output directory")

	rootCmd.AddCommand(regionsCmd, operationsCmd, tokenCmd, commandCmd, sensorTagsCmd, sensorPullCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger().Level(level)
	return &l
}

func loadConfig() (*falconbridge.Config, error) {
	var cfg *falconbridge.Config
	if configFile != "" {
		c, err := falconbridge.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
		cfg.ApplyEnv()
	} else {
		cfg = falconbridge.ConfigFromEnv()
	}
	if baseURL != "" {
		cfg.BaseURL = falconbridge.ConfirmBaseURL(baseURL)
	}
	cfg.Debug = debug
	return cfg, nil
}

func newBridge() (*falconbridge.Bridge, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return falconbridge.New(cfg, falconbridge.WithLogger(newLogger()))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runRegions(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tAPI\tCONTAINER UPLOAD\tREGISTRY")
	for _, r := range falconbridge.Regions() {
		container := r.ContainerHost
		if container == "" {
			container = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.APIHost, container, r.RegistryHost)
	}
	return w.Flush()
}

func runOperations(cmd *cobra.Command, args []string) error {
	registry := endpoint.Default()
	if specFile != "" {
		doc, err := endpoint.LoadDocument(specFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", specFile, err)
		}
		descs, err := endpoint.FromOpenAPI(doc)
		if err != nil {
			return err
		}
		registry.Add(descs...)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tMETHOD\tPATH\tTAG")
	for _, id := range registry.Operations(tag) {
		d, err := registry.Lookup(id)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t%v\t-\n", id, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.OperationID, d.Method, d.Path, d.Tag)
	}
	return w.Flush()
}

func runToken(cmd *cobra.Command, args []string) error {
	bridge, err := newBridge()
	if err != nil {
		return err
	}
	auth, ok := bridge.Auth().(*falconbridge.TokenAuth)
	if !ok {
		return fmt.Errorf("token command needs client credentials")
	}
	ctx, cancel := signalContext()
	defer cancel()

	tok, err := auth.Token(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "base URL %s, expires %s\n", bridge.BaseURL(), tok.Expiry.Format(time.RFC3339))
	fmt.Println(tok.AccessToken)
	return nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	bridge, err := newBridge()
	if err != nil {
		return err
	}

	opts := falconbridge.CommandOptions{
		Keywords:     falconbridge.Keywords{},
		ExpandResult: expand,
	}
	for _, p := range params {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, want name=value", p)
		}
		opts.Keywords[k] = v
	}
	if bodyFile != "" {
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		var body any
		if err := json.Unmarshal(data, &body); err != nil {
			return fmt.Errorf("parsing body %s: %w", bodyFile, err)
		}
		opts.Body = body
	}

	ctx, cancel := signalContext()
	defer cancel()

	resp := bridge.Command(ctx, args[0], opts)
	if resp.Envelope == nil {
		if outputFile == "" {
			_, err := os.Stdout.Write(resp.Raw)
			return err
		}
		return os.WriteFile(outputFile, resp.Raw, 0o644)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp.Envelope); err != nil {
		return err
	}
	if !resp.Envelope.OK() {
		return fmt.Errorf("%s returned status %d", args[0], resp.Envelope.StatusCode)
	}
	return nil
}

func runSensorTags(cmd *cobra.Command, args []string) error {
	bridge, err := newBridge()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	creds, err := utils.FetchRegistryCredentials(ctx, bridge)
	if err != nil {
		return err
	}
	repo, err := utils.SensorRepository(bridge.BaseURL(), image)
	if err != nil {
		return err
	}
	tags, err := utils.ListSensorTags(ctx, repo, creds, utils.RegistryOptions{})
	if err != nil {
		return err
	}
	for _, t := range tags {
		fmt.Println(t)
	}
	return nil
}

func runSensorPull(cmd *cobra.Command, args []string) error {
	bridge, err := newBridge()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	creds, err := utils.FetchRegistryCredentials(ctx, bridge)
	if err != nil {
		return err
	}
	repo, err := utils.SensorRepository(bridge.BaseURL(), image)
	if err != nil {
		return err
	}
	if imageTag == "" {
		tags, err := utils.ListSensorTags(ctx, repo, creds, utils.RegistryOptions{})
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			return fmt.Errorf("no tags published for %s", repo)
		}
		imageTag = tags[len(tags)-1]
	}
	ref := repo + ":" + imageTag
	if err := utils.PullSensorImage(ctx, ref, creds, outputDir, utils.RegistryOptions{}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "pulled %s into %s\n", ref, outputDir)
	return nil
}

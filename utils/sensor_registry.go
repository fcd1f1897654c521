// Package utils works with the CrowdStrike sensor image registry: deriving
// pull credentials from the API, listing the published tags of a sensor
// image and pulling an image into a local directory.
//
// Example usage:
//
//	creds, err := utils.FetchRegistryCredentials(ctx, bridge)
//	if err != nil {
//		// handle error
//	}
//	repo, _ := utils.SensorRepository(bridge.BaseURL(), utils.FalconSensor)
//	tags, err := utils.ListSensorTags(ctx, repo, creds, utils.RegistryOptions{})
package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry"
	orasremote "oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/services"
)

// Sensor image names published in the registry.
const (
	FalconSensor        = "falcon-sensor"
	FalconContainer     = "falcon-container"
	FalconKAC           = "falcon-kac"
	FalconImageAnalyzer = "falcon-imageanalyzer"
)

// RegistryCredentials authenticate against the sensor registry.
type RegistryCredentials struct {
	Username string
	Password string
}

// RegistryOptions tune registry access, mostly for tests against a local
// registry.
type RegistryOptions struct {
	PlainHTTP bool
}

// FetchRegistryCredentials asks the API for the customer id and the registry
// token and turns them into pull credentials.
func FetchRegistryCredentials(ctx context.Context, b *falconbridge.Bridge) (RegistryCredentials, error) {
	ccidResp := services.NewSensorDownload(b).GetCCID(ctx)
	if err := checkEnvelope(ccidResp); err != nil {
		return RegistryCredentials{}, fmt.Errorf("fetching CCID: %w", err)
	}
	ccids := ccidResp.Envelope.Resources()
	if len(ccids) == 0 {
		return RegistryCredentials{}, errors.New("fetching CCID: no resources returned")
	}
	ccid, _ := ccids[0].(string)

	credResp := services.NewFalconContainer(b).GetCredentials(ctx)
	if err := checkEnvelope(credResp); err != nil {
		return RegistryCredentials{}, fmt.Errorf("fetching registry token: %w", err)
	}
	var token string
	for _, r := range credResp.Envelope.Resources() {
		if m, ok := r.(map[string]any); ok {
			token, _ = m["token"].(string)
		}
	}
	if token == "" {
		return RegistryCredentials{}, errors.New("fetching registry token: no token returned")
	}
	return CredentialsFromCCID(ccid, token)
}

// CredentialsFromCCID builds registry credentials. The username is "fc-"
// followed by the lower-cased customer id without its checksum suffix.
func CredentialsFromCCID(ccid, token string) (RegistryCredentials, error) {
	cid := strings.ToLower(strings.SplitN(ccid, "-", 2)[0])
	if cid == "" {
		return RegistryCredentials{}, errors.New("empty CCID")
	}
	return RegistryCredentials{Username: "fc-" + cid, Password: token}, nil
}

func checkEnvelope(resp *falconbridge.Response) error {
	if resp.Envelope == nil {
		return errors.New("unexpected binary response")
	}
	if !resp.Envelope.OK() {
		msgs := resp.Envelope.Errors()
		if len(msgs) == 0 {
			return fmt.Errorf("status %d", resp.Envelope.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.Envelope.StatusCode, strings.Join(msgs, "; "))
	}
	return nil
}

var registryRegions = map[string]string{
	"US1":    "us-1",
	"US2":    "us-2",
	"EU1":    "eu-1",
	"USGOV1": "gov1",
	"USGOV2": "gov2",
}

// SensorRepository returns the repository of sensor image for the cloud
// serving apiBase, for example
// registry.crowdstrike.com/falcon-sensor/us-1/release/falcon-sensor.
func SensorRepository(apiBase, image string) (string, error) {
	switch image {
	case FalconSensor, FalconContainer, FalconKAC, FalconImageAnalyzer:
	default:
		return "", fmt.Errorf("unknown sensor image %q", image)
	}
	region := registryRegions[falconbridge.ConfirmBaseRegion(apiBase)]
	host := falconbridge.SensorRegistryHost(apiBase)
	return fmt.Sprintf("%s/%s/%s/release/%s", host, image, region, image), nil
}

// ListSensorTags lists the tags of repo, sorted.
func ListSensorTags(ctx context.Context, repo string, creds RegistryCredentials, opts RegistryOptions) ([]string, error) {
	var nameOpts []name.Option
	if opts.PlainHTTP {
		nameOpts = append(nameOpts, name.Insecure)
	}
	repository, err := name.NewRepository(repo, nameOpts...)
	if err != nil {
		return nil, fmt.Errorf("invalid repository %q: %w", repo, err)
	}

	remoteOpts := []remote.Option{remote.WithContext(ctx)}
	if creds.Username != "" {
		remoteOpts = append(remoteOpts, remote.WithAuth(&authn.Basic{
			Username: creds.Username,
			Password: creds.Password,
		}))
	}
	tags, err := remote.List(repository, remoteOpts...)
	if err != nil {
		return nil, fmt.Errorf("listing tags of %s: %w", repo, err)
	}
	sort.Strings(tags)
	return tags, nil
}

// PullSensorImage copies the image at ref into outputDir.
func PullSensorImage(ctx context.Context, ref string, creds RegistryCredentials, outputDir string, opts RegistryOptions) error {
	if ref == "" {
		return errors.New("ref cannot be empty")
	}
	if outputDir == "" {
		return errors.New("outputDir cannot be empty")
	}

	parsed, err := registry.ParseReference(ref)
	if err != nil {
		return fmt.Errorf("invalid image reference %q: %w", ref, err)
	}

	repo, err := orasremote.NewRepository(parsed.String())
	if err != nil {
		return fmt.Errorf("failed to create repository object for %s: %w", parsed.String(), err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = &auth.Client{
		Credential: auth.CredentialFunc(func(ctx context.Context, host string) (auth.Credential, error) {
			if host != parsed.Registry || creds.Username == "" {
				return auth.EmptyCredential, nil
			}
			return auth.Credential{Username: creds.Username, Password: creds.Password}, nil
		}),
	}

	if err := os.MkdirAll(filepath.Clean(outputDir), 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory %q: %w", outputDir, err)
	}
	fs, err := file.New(outputDir)
	if err != nil {
		return fmt.Errorf("failed to create file store at %q: %w", outputDir, err)
	}
	defer fs.Close()

	if _, err := oras.Copy(ctx, repo, parsed.Reference, fs, "", oras.DefaultCopyOptions); err != nil {
		return fmt.Errorf("pulling %s: %w", ref, err)
	}
	return nil
}

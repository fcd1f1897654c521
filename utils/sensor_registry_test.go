package utils

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/registry"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/mock"
)

func TestCredentialsFromCCID(t *testing.T) {
	creds, err := CredentialsFromCCID("ABCDEF0123-7F", "tok")
	if err != nil {
		t.Fatalf("CredentialsFromCCID() error = %v", err)
	}
	if creds.Username != "fc-abcdef0123" || creds.Password != "tok" {
		t.Errorf("CredentialsFromCCID() = %+v", creds)
	}
	if _, err := CredentialsFromCCID("", "tok"); err == nil {
		t.Error("CredentialsFromCCID(empty) error = nil")
	}
}

func TestSensorRepository(t *testing.T) {
	tests := []struct {
		base  string
		image string
		want  string
	}{
		{"https://api.crowdstrike.com", FalconSensor, "registry.crowdstrike.com/falcon-sensor/us-1/release/falcon-sensor"},
		{"https://api.eu-1.crowdstrike.com", FalconKAC, "registry.crowdstrike.com/falcon-kac/eu-1/release/falcon-kac"},
		{"https://api.laggar.gcw.crowdstrike.com", FalconContainer, "registry.laggar.gcw.crowdstrike.com/falcon-container/gov1/release/falcon-container"},
	}
	for _, tt := range tests {
		got, err := SensorRepository(tt.base, tt.image)
		if err != nil {
			t.Errorf("SensorRepository(%q, %q) error = %v", tt.base, tt.image, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SensorRepository(%q, %q) = %q, want %q", tt.base, tt.image, got, tt.want)
		}
	}
	if _, err := SensorRepository("https://api.crowdstrike.com", "falcon-unknown"); err == nil {
		t.Error("SensorRepository(unknown image) error = nil")
	}
}

func TestFetchRegistryCredentials(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	cfg := falconbridge.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.ClientID = mock.DefaultClientID
	cfg.ClientSecret = mock.DefaultClientSecret
	b, err := falconbridge.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	creds, err := FetchRegistryCredentials(context.Background(), b)
	if err != nil {
		t.Fatalf("FetchRegistryCredentials() error = %v", err)
	}
	wantUser := "fc-" + strings.ToLower(strings.Split(mock.CCID, "-")[0])
	if creds.Username != wantUser || creds.Password != mock.RegistryToken {
		t.Errorf("FetchRegistryCredentials() = %+v, want user %s", creds, wantUser)
	}
}

func TestFetchRegistryCredentialsDenied(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()
	srv.ShouldReturn429Always = true

	cfg := falconbridge.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.ClientID = mock.DefaultClientID
	cfg.ClientSecret = mock.DefaultClientSecret
	b, err := falconbridge.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = FetchRegistryCredentials(context.Background(), b)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("FetchRegistryCredentials() error = %v, want status 429", err)
	}
}

// pushTestImages starts an in-memory registry holding repo:tags.
func pushTestImages(t *testing.T, repo string, tags ...string) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(registry.New())
	host := strings.TrimPrefix(srv.URL, "http://")

	img, err := random.Image(256, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, tag := range tags {
		ref, err := name.NewTag(host+"/"+repo+":"+tag, name.Insecure)
		if err != nil {
			t.Fatal(err)
		}
		if err := remote.Write(ref, img); err != nil {
			t.Fatalf("remote.Write(%s) error = %v", ref, err)
		}
	}
	return srv, host + "/" + repo
}

func TestListSensorTags(t *testing.T) {
	srv, repo := pushTestImages(t, "falcon-sensor/us-1/release/falcon-sensor", "7.10.0-1", "7.09.0-2", "7.11.0-1")
	defer srv.Close()

	tags, err := ListSensorTags(context.Background(), repo, RegistryCredentials{}, RegistryOptions{PlainHTTP: true})
	if err != nil {
		t.Fatalf("ListSensorTags() error = %v", err)
	}
	want := []string{"7.09.0-2", "7.10.0-1", "7.11.0-1"}
	if strings.Join(tags, ",") != strings.Join(want, ",") {
		t.Errorf("ListSensorTags() = %v, want %v", tags, want)
	}
}

func TestPullSensorImage(t *testing.T) {
	srv, repo := pushTestImages(t, "falcon-kac/us-1/release/falcon-kac", "1.0.0")
	defer srv.Close()

	dir := t.TempDir()
	err := PullSensorImage(context.Background(), repo+":1.0.0", RegistryCredentials{Username: "fc-test", Password: "x"}, dir, RegistryOptions{PlainHTTP: true})
	if err != nil {
		t.Fatalf("PullSensorImage() error = %v", err)
	}

	if err := PullSensorImage(context.Background(), "", RegistryCredentials{}, dir, RegistryOptions{}); err == nil {
		t.Error("PullSensorImage(empty ref) error = nil")
	}
	if err := PullSensorImage(context.Background(), repo+":missing", RegistryCredentials{}, dir, RegistryOptions{PlainHTTP: true}); err == nil {
		t.Error("PullSensorImage(missing tag) error = nil")
	}
}

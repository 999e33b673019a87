package xcodebuild_test

import (
	"context"
	"testing"

	"github.com/sdkmap/sdkmap/internal/sources/xcodebuild"
	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/sources"
)

const showSDKsOutput = `iOS SDKs:
	iOS 17.2                      	-sdk iphoneos17.2

iOS Simulator SDKs:
	Simulator - iOS 17.2          	-sdk iphonesimulator17.2

macOS SDKs:
	macOS 14.2                    	-sdk macosx14.2
`

func fakeRunner(outputs map[string]string, err error) xcodebuild.Runner {
	return func(_ context.Context, _ string, args ...string) (string, error) {
		if err != nil {
			return "", err
		}
		return outputs[args[0]], nil
	}
}

func TestFetchParsesLocalXcode(t *testing.T) {
	src := xcodebuild.New(xcodebuild.WithRunner(fakeRunner(map[string]string{
		"-version":  "Xcode 15.2\nBuild version 15C500b\n",
		"-showsdks": showSDKsOutput,
	}, nil)))

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	sdk, ok := result.SDK("15.2")
	if !ok || sdk != "17.2" {
		t.Errorf("SDK(15.2) = %q, %v; want 17.2", sdk, ok)
	}
	if url := result.ProvenanceURL("15.2"); url != sources.BaseURL(sources.LocalXcodebuildID) {
		t.Errorf("ProvenanceURL = %q", url)
	}
}

func TestFetchNormalizesBareMajor(t *testing.T) {
	src := xcodebuild.New(xcodebuild.WithRunner(fakeRunner(map[string]string{
		"-version":  "Xcode 26\nBuild version 26A100\n",
		"-showsdks": "\tiOS 26 \t-sdk iphoneos26.0\n",
	}, nil)))

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if sdk, ok := result.SDK("26.0"); !ok || sdk != "26.0" {
		t.Errorf("SDK(26.0) = %q, %v", sdk, ok)
	}
}

func TestFetchMissingBinaryIsEmpty(t *testing.T) {
	src := xcodebuild.New(xcodebuild.WithRunner(fakeRunner(nil, errors.ErrNotFound)))

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("missing xcodebuild must not be an error: %v", err)
	}
	if result.Len() != 0 {
		t.Errorf("expected empty result, got %d entries", result.Len())
	}
}

func TestFetchNoIphoneosSDKIsEmpty(t *testing.T) {
	src := xcodebuild.New(xcodebuild.WithRunner(fakeRunner(map[string]string{
		"-version":  "Xcode 15.2\n",
		"-showsdks": "macOS SDKs:\n\tmacOS 14.2 -sdk macosx14.2\n",
	}, nil)))

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Len() != 0 {
		t.Errorf("expected empty result, got %d entries", result.Len())
	}
}

// Package xcodereleases implements the xcodereleases.com source, a community
// maintained JSON feed of every Xcode release with its bundled SDKs.
package xcodereleases

import (
	"context"
	"encoding/json"

	"github.com/sdkmap/sdkmap/internal/transport"
	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/logging"
	"github.com/sdkmap/sdkmap/pkg/sources"
)

const dataURL = "https://xcodereleases.com/data.json"

// Release is one entry of the data.json feed. Only the fields the mapping
// needs are decoded.
type Release struct {
	Version struct {
		Number  string `json:"number"`
		Release struct {
			Release bool `json:"release"`
			Beta    int  `json:"beta"`
			RC      int  `json:"rc"`
		} `json:"release"`
	} `json:"version"`
	SDKs struct {
		IOS []struct {
			Number string `json:"number"`
		} `json:"iOS"`
	} `json:"sdks"`
}

// Source fetches the xcodereleases.com feed.
type Source struct {
	client *transport.Client
	url    string
}

// Option configures a Source.
type Option func(*Source)

// WithURL overrides the feed URL, used by tests.
func WithURL(url string) Option {
	return func(s *Source) {
		s.url = url
	}
}

// New creates the xcodereleases source.
func New(opts ...Option) *Source {
	s := &Source{client: transport.New(), url: dataURL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.XcodeReleasesID
}

// Fetch downloads and parses the feed.
func (s *Source) Fetch(ctx context.Context) (*sources.Result, error) {
	body, err := s.client.GetBody(ctx, s.ID().String(), s.url)
	if err != nil {
		return nil, err
	}

	var releases []Release
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, errors.WrapParse("json", s.url, err)
	}

	result := Parse(releases, s.url)
	logging.Ctx(ctx).Info().Int("versions", result.Len()).Msg("xcodereleases feed parsed")
	return result, nil
}

// Parse reduces the feed into a Result. The feed lists betas and RCs next to
// stable builds of the same version number; stable entries take precedence,
// pre-release values only fill versions that never saw a stable build.
func Parse(releases []Release, url string) *sources.Result {
	stable := sources.NewResult(sources.XcodeReleasesID)
	prerelease := sources.NewResult(sources.XcodeReleasesID)

	for _, rel := range releases {
		xcodeVer := rel.Version.Number
		if xcodeVer == "" || len(rel.SDKs.IOS) == 0 {
			continue
		}
		sdk := rel.SDKs.IOS[0].Number
		if sdk == "" {
			continue
		}

		info := rel.Version.Release
		if info.Release && info.Beta == 0 && info.RC == 0 {
			stable.AddWithURL(xcodeVer, sdk, url)
		} else {
			prerelease.AddWithURL(xcodeVer, sdk, url)
		}
	}

	// Stable merged first so a beta's SDK never shadows the shipped one.
	result := sources.NewResult(sources.XcodeReleasesID)
	result.Merge(stable)
	result.Merge(prerelease)
	return result
}

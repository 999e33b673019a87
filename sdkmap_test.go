package sdkmap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkmap/sdkmap/pkg/errors"
	"github.com/sdkmap/sdkmap/pkg/sources"
	"github.com/sdkmap/sdkmap/pkg/xref"
)

type stubSource struct {
	id      sources.ID
	entries map[string]string
	err     error
}

func (s *stubSource) ID() sources.ID { return s.id }

func (s *stubSource) Fetch(_ context.Context) (*sources.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := sources.NewResult(s.id)
	for ver, sdk := range s.entries {
		result.Add(ver, sdk)
	}
	return result, nil
}

type stubEnumerator struct {
	versions []string
}

func (e *stubEnumerator) Versions(_ context.Context) []string { return e.versions }

func TestResolveEndToEnd(t *testing.T) {
	client, err := New(
		WithSources(
			&stubSource{id: sources.AppleSupportID, entries: map[string]string{
				"15.2": "17.2",
				"14.0": "16.0",
			}},
			&stubSource{id: sources.XcodeReleasesID, entries: map[string]string{
				"15.2": "17.2",
				"14.0": "16.1",
				"13.0": "15.0",
			}},
		),
		WithEnumerator(&stubEnumerator{versions: []string{"11.7"}}),
	)
	require.NoError(t, err)

	run, err := client.Resolve(context.Background())
	require.NoError(t, err)

	byVersion := make(map[string]xref.Record)
	for _, rec := range run.Report.Records {
		byVersion[rec.Xcode] = rec
	}

	assert.Equal(t, xref.StatusConsensus, byVersion["15.2"].Status)
	assert.Equal(t, "17.2", byVersion["15.2"].SDK)

	// Conflict resolves to the more authoritative source's value.
	assert.Equal(t, xref.StatusConflict, byVersion["14.0"].Status)
	assert.Equal(t, "16.0", byVersion["14.0"].SDK)
	assert.Equal(t, sources.AppleSupportID, byVersion["14.0"].ChosenFrom)

	assert.Equal(t, xref.StatusSingleSource, byVersion["13.0"].Status)

	// Enumerated-only versions enter the universe but resolve to nothing.
	assert.Equal(t, xref.StatusNotFound, byVersion["11.7"].Status)

	// Flat output excludes the unresolved enumerated version.
	assert.Equal(t, 3, run.Flat.Len())
	assert.Equal(t, []string{"13.0", "14.0", "15.2"}, run.Flat.Versions())

	// No previous file configured, so the run always counts as changed.
	assert.True(t, run.Changed)
	assert.Nil(t, run.Changes)
}

func TestResolveUnchangedAgainstPreviousRun(t *testing.T) {
	src := &stubSource{id: sources.XcodeReleasesID, entries: map[string]string{
		"15.2": "17.2",
		"15.0": "17.0",
	}}

	path := filepath.Join(t.TempDir(), "sdk_map.json")

	client, err := New(
		WithSources(src),
		WithoutEnumeration(),
		WithPreviousPath(path),
	)
	require.NoError(t, err)

	first, err := client.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Changed, "missing previous file must count as changed")

	data, err := json.Marshal(first.Flat)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	second, err := client.Resolve(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Changed, "identical rerun must count as unchanged")
	require.NotNil(t, second.Changes)
	assert.False(t, second.Changes.HasChanges())
}

func TestResolveDetectsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdk_map.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"15.0":"17.0"}`), 0o644))

	client, err := New(
		WithSources(&stubSource{id: sources.XcodeReleasesID, entries: map[string]string{
			"15.0": "17.0",
			"15.2": "17.2",
		}}),
		WithoutEnumeration(),
		WithPreviousPath(path),
	)
	require.NoError(t, err)

	run, err := client.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, run.Changed)
	require.NotNil(t, run.Changes)
	assert.Equal(t, []string{"15.2"}, run.Changes.Added)
}

func TestResolveIsolatesFailingSources(t *testing.T) {
	client, err := New(
		WithSources(
			&stubSource{id: sources.AppleSupportID, err: fmt.Errorf("network down")},
			&stubSource{id: sources.XcodeReleasesID, entries: map[string]string{"15.2": "17.2"}},
		),
		WithoutEnumeration(),
	)
	require.NoError(t, err)

	run, err := client.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Flat.Len())
}

func TestResolveEmptyUniverse(t *testing.T) {
	client, err := New(
		WithSources(&stubSource{id: sources.XcodeReleasesID, entries: map[string]string{}}),
		WithoutEnumeration(),
	)
	require.NoError(t, err)

	_, err = client.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsEmptyUniverse(err))
}

func TestResolveConflictsOnly(t *testing.T) {
	client, err := New(
		WithSources(
			&stubSource{id: sources.AppleSupportID, entries: map[string]string{
				"15.2": "17.2",
				"14.0": "16.0",
			}},
			&stubSource{id: sources.XcodeReleasesID, entries: map[string]string{
				"15.2": "17.2",
				"14.0": "16.1",
			}},
		),
		WithoutEnumeration(),
		WithConflictsOnly(true),
	)
	require.NoError(t, err)

	run, err := client.Resolve(context.Background())
	require.NoError(t, err)

	// The full report still covers everything.
	assert.Len(t, run.Report.Records, 2)
	// Output rows and the flat mapping are restricted to review-worthy rows.
	require.Len(t, run.Records, 1)
	assert.Equal(t, "14.0", run.Records[0].Xcode)
	assert.Equal(t, 1, run.Flat.Len())
}

func TestOptionValidation(t *testing.T) {
	_, err := New(WithSources())
	assert.Error(t, err)

	_, err = New(WithWorkers(0))
	assert.Error(t, err)
}

func TestResolveDeterministic(t *testing.T) {
	newClient := func() *Client {
		c, err := New(
			WithSources(
				&stubSource{id: sources.AppleSupportID, entries: map[string]string{
					"15.2": "17.2", "14.0": "16.0", "13.0": "15.0",
				}},
				&stubSource{id: sources.XcodeReleasesID, entries: map[string]string{
					"14.0": "16.1", "12.0": "14.0",
				}},
			),
			WithoutEnumeration(),
		)
		require.NoError(t, err)
		return c
	}

	first, err := newClient().Resolve(context.Background())
	require.NoError(t, err)
	second, err := newClient().Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, second.Report.Records, len(first.Report.Records))
	for i := range first.Report.Records {
		assert.Equal(t, first.Report.Records[i], second.Report.Records[i])
	}
	assert.True(t, first.Flat.Equal(second.Flat))
}

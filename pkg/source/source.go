// Package source loads raw geographic inputs from HTTP or local disk.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"

	"geoquiz/pkg/request"
	"geoquiz/pkg/topology"
)

// Loader resolves source URIs. http(s) URIs go through the fetch client,
// anything else is read from disk.
type Loader struct {
	client *request.Client
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil client only supports local paths.
func NewLoader(client *request.Client, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, logger: logger}
}

func isRemote(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// Bytes returns the raw content behind uri.
func (l *Loader) Bytes(ctx context.Context, uri string) ([]byte, error) {
	if isRemote(uri) {
		if l.client == nil {
			return nil, fmt.Errorf("no fetch client configured for %s", uri)
		}
		return l.client.Get(ctx, uri)
	}
	data, err := os.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	l.logger.Info("Read", "path", uri, "bytes", len(data))
	return data, nil
}

// FeatureCollection loads a GeoJSON FeatureCollection, or a local ESRI
// shapefile when uri ends in .shp. Elevation values are dropped.
func (l *Loader) FeatureCollection(ctx context.Context, uri string) (*geojson.FeatureCollection, error) {
	if strings.EqualFold(filepath.Ext(uri), ".shp") {
		if isRemote(uri) {
			return nil, fmt.Errorf("remote shapefiles are not supported: %s", uri)
		}
		return ReadShapefile(uri)
	}

	data, err := l.Bytes(ctx, uri)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON %s: %w", uri, err)
	}
	l.logger.Debug("Parsed feature collection", "uri", uri, "features", len(fc.Features))
	return fc, nil
}

// Topology loads a TopoJSON document.
func (l *Loader) Topology(ctx context.Context, uri string) (*topology.Topology, error) {
	data, err := l.Bytes(ctx, uri)
	if err != nil {
		return nil, err
	}
	t, err := topology.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse topology %s: %w", uri, err)
	}
	return t, nil
}

// Object decodes one object of the topology at uri. An empty name selects
// the only object of the document.
func (l *Loader) Object(ctx context.Context, uri, name string) (*geojson.FeatureCollection, error) {
	t, err := l.Topology(ctx, uri)
	if err != nil {
		return nil, err
	}
	if name == "" {
		names := t.ObjectNames()
		if len(names) != 1 {
			return nil, fmt.Errorf("%s has %d objects %v, configure which one to use", uri, len(names), names)
		}
		name = names[0]
	}
	return t.FeatureCollection(name)
}

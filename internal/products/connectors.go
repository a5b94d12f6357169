package products

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/dadi/cli/internal/config/wizard"
)

// Datastore holds the database answers collected by the API wizard.
type Datastore struct {
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Path     string `mapstructure:"path"`
}

// Connector describes an API data connector package.
type Connector struct {
	Package     string
	Handle      string
	Description string
	// DefaultPort is offered for connectors that talk to a database server.
	// Zero means the connector has no server to connect to.
	DefaultPort int
	Build       func(ds Datastore) map[string]any
}

// UsesServer reports whether the connector needs a host and port.
func (c *Connector) UsesServer() bool {
	return c.DefaultPort != 0
}

var connectors = []*Connector{
	{
		Package:     "@dadi/api-mongodb",
		Handle:      "mongodb",
		Description: "A MongoDB adapter for DADI API",
		DefaultPort: 27017,
		Build: func(ds Datastore) map[string]any {
			cfg := map[string]any{
				"hosts":    serverHosts(ds),
				"username": ds.Username,
				"password": ds.Password,
				"database": ds.Database,
			}
			if ds.Database != "" {
				cfg[ds.Database] = map[string]any{"hosts": serverHosts(ds)}
			}
			return cfg
		},
	},
	{
		Package:     "@dadi/api-rethinkdb",
		Handle:      "rethinkdb",
		Description: "A RethinkDB adapter for DADI API",
		DefaultPort: 28015,
		Build: func(ds Datastore) map[string]any {
			return map[string]any{
				"hosts":    serverHosts(ds),
				"username": ds.Username,
				"password": ds.Password,
				"database": ds.Database,
			}
		},
	},
	{
		Package:     "@dadi/api-filestore",
		Handle:      "filestore",
		Description: "A JSON datastore adapter for DADI API",
		Build: func(ds Datastore) map[string]any {
			return map[string]any{
				"database": map[string]any{
					"path":                ds.Path,
					"autosaveInterval":    1000,
					"serializationMethod": "normal",
				},
			}
		},
	},
}

func serverHosts(ds Datastore) []any {
	return []any{map[string]any{"host": ds.Host, "port": ds.Port}}
}

// LookupConnector returns the connector published as pkg.
func LookupConnector(pkg string) (*Connector, bool) {
	for _, c := range connectors {
		if c.Package == pkg {
			return c, true
		}
	}
	return nil, false
}

func knownConnectorChoices() []wizard.Choice {
	choices := make([]wizard.Choice, len(connectors))
	for i, c := range connectors {
		choices[i] = wizard.Choice{
			Name:  fmt.Sprintf("%s (%s)", c.Package, c.Description),
			Short: c.Package,
			Value: c.Package,
		}
	}
	return choices
}

// decodeDatastore converts the raw datastore answers. Numbers may arrive as
// strings, int64 or float64 depending on where the answers came from.
func decodeDatastore(raw any) (Datastore, error) {
	var ds Datastore
	if raw == nil {
		return ds, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &ds,
	})
	if err != nil {
		return ds, err
	}
	if err := dec.Decode(raw); err != nil {
		return ds, fmt.Errorf("failed to decode datastore answers: %w", err)
	}
	return ds, nil
}

package products

import (
	"fmt"

	"github.com/dadi/cli/internal/config/answers"
	"github.com/dadi/cli/internal/config/wizard"
)

var protocolChoices = []wizard.Choice{
	{Name: "HTTPS (secure, recommended)", Value: "https"},
	{Name: "HTTP (insecure)", Value: "http"},
}

// API is DADI API.
var API = register(&Product{
	Name:        "api",
	Package:     "@dadi/api",
	Title:       "DADI API setup",
	Description: "API configuration file",
	MinVersion:  "3.0.0",
	Steps:       apiSteps,
	Schema:      apiSchema,
	Finalize:    finalizeAPI,
})

func apiSteps(src Sources) []wizard.Step {
	connectorChoices, resolveConnectors := src.connectorChoices()
	usesServer := func(a answers.Tree) bool {
		c, ok := LookupConnector(a.String("datastore"))
		return ok && c.UsesServer()
	}
	usesPath := func(a answers.Tree) bool {
		c, ok := LookupConnector(a.String("datastore"))
		return ok && !c.UsesServer()
	}
	createClient := isTrue("_meta.client.create")
	mediaS3 := equals("media.storage", "s3")

	return []wizard.Step{
		{
			Text: "Let's start by configuring the web server that API runs.",
			Questions: []wizard.Question{
				{Name: "app.name", Message: "What is the name of this DADI API instance?"},
				{Name: "server.host", Message: "What is the IP address the application should run on?", Default: "0.0.0.0"},
				{Name: "server.port", Message: "What is the port number?"},
				{
					Name:    "server.protocol",
					Type:    wizard.TypeList,
					Message: "What protocol would you like to use?",
					Choices: protocolChoices,
					Default: "https",
				},
				{
					Type:      wizard.TypeInfo,
					Condition: equals("server.protocol", "https"),
					Message: "You'll need to configure the SSL passphrase and the paths to the private key and certificates.\n" +
						"  Don't worry, you can do this easily by editing the configuration file that will be generated when we're done.",
				},
			},
		},
		{
			Text: "We'll now define how your API instance can be accessed from the outside world.",
			Questions: []wizard.Question{
				{Name: "publicUrl.host", Message: "What is the hostname or domain where your API can be accessed at?", Default: "my-api.com"},
				{Name: "publicUrl.port", Message: "What is the port?", Default: 80},
				{
					Name:    "publicUrl.protocol",
					Type:    wizard.TypeList,
					Message: "What protocol?",
					Choices: protocolChoices,
					Default: "https",
				},
			},
		},
		{
			Text: "Looking great! Time to configure your databases.",
			Questions: []wizard.Question{
				{
					Name:           "datastore",
					Type:           wizard.TypeList,
					Message:        "API supports different database engines. Which one would you like to use?",
					Choices:        connectorChoices,
					ResolveChoices: resolveConnectors,
				},
				{Name: "_meta.datastore.database", Message: "What is the name of the database?", Default: "dadiapi"},
				{Name: "_meta.datastore.username", Message: "What is the database username?"},
				{Name: "_meta.datastore.password", Message: "What is the database password?"},
				{
					Name:      "_meta.datastore.host",
					Message:   "What is the database server host?",
					Default:   "127.0.0.1",
					Condition: usesServer,
				},
				{
					Name:      "_meta.datastore.port",
					Message:   "And what is the database server port?",
					Condition: usesServer,
					Default: wizard.DefaultFunc(func(a answers.Tree) any {
						if c, ok := LookupConnector(a.String("datastore")); ok && c.UsesServer() {
							return c.DefaultPort
						}
						return nil
					}),
				},
				{
					Name:      "_meta.datastore.path",
					Message:   "Where in the filesystem should the database files be stored?",
					Default:   "workspace/db",
					Condition: usesPath,
				},
			},
		},
		{
			Text: "You'll need an oAuth2 client to interact with API. It consists of an ID + secret pair, " +
				"which you'll send to API in exchange for a bearer token. " +
				"This token is then sent alongside each request in order to authenticate you with the system.",
			Questions: []wizard.Question{
				{Name: "_meta.client.create", Type: wizard.TypeConfirm, Message: "Would you like to create a client?"},
				{Name: "_meta.client.clientId", Message: "What is the client ID?", Condition: createClient},
				{Name: "_meta.client.secret", Message: "And what is the secret?", Condition: createClient},
				{
					Name:      "_meta.client.accessType",
					Type:      wizard.TypeList,
					Message:   "What level of permissions should this client get?",
					Condition: createClient,
					Choices: []wizard.Choice{
						{Name: "Regular user", Value: "user"},
						{Name: "Administrator", Value: "admin"},
					},
				},
			},
		},
		{
			Text:      "Let's now look at caching, which is crucial to ensure that API delivers data in a performant way.",
			Questions: cachingQuestions(),
		},
		{
			Text: "Almost there! Time to define how API handles media uploads (e.g. images).",
			Questions: append([]wizard.Question{
				{
					Name:    "media.storage",
					Type:    wizard.TypeList,
					Message: "Where should API store uploaded assets?",
					Choices: []wizard.Choice{
						{Name: "Disk storage", Value: "disk"},
						{Name: "Amazon S3 bucket", Value: "s3"},
						{Name: "Nowhere, I don't want API to handle media", Value: "none"},
					},
				},
				{
					Name:      "media.basePath",
					Message:   "Where in the filesystem should assets be stored?",
					Condition: equals("media.storage", "disk"),
				},
			}, s3Questions(src, "media.s3", mediaS3)...),
		},
		{
			Text:      "You made it! We're wrapping up.",
			Questions: environmentQuestions(),
		},
	}
}

// cachingQuestions asks about the directory and Redis caches shared by API
// and CDN.
func cachingQuestions() []wizard.Question {
	redis := isTrue("caching.redis.enabled")
	return []wizard.Question{
		{Name: "caching.directory.enabled", Message: "Would you like to cache items on the local filesystem?"},
		{
			Name:      "caching.directory.path",
			Message:   "What is the path to the cache directory?",
			Condition: isTrue("caching.directory.enabled"),
		},
		{Name: "caching.redis.enabled", Message: "Would you like to cache items on a Redis server?"},
		{Name: "caching.redis.host", Message: "What is the host name of the Redis server?", Condition: redis},
		{Name: "caching.redis.port", Message: "What is the port number of the Redis server?", Condition: redis},
		{Name: "caching.redis.password", Message: "What is the password of the Redis server?", Condition: redis},
	}
}

// finalizeAPI moves the bookkeeping answers below _meta out of the
// configuration, records the datastore in the auth block and builds the
// connector configuration file.
func finalizeAPI(a answers.Tree) (*Output, error) {
	cfg := answers.Clone(a)
	env, err := resolveEnvironment(cfg)
	if err != nil {
		return nil, err
	}

	meta := cfg.Map("_meta")
	cfg.Delete("_meta")

	ds, err := decodeDatastore(meta.Get("datastore"))
	if err != nil {
		return nil, err
	}

	if cfg.String("media.storage") == "none" {
		cfg.Delete("media")
	}

	datastore := cfg.String("datastore")
	cfg.Set("auth.datastore", datastore)
	cfg.Set("auth.database", ds.Database)

	out := &Output{Environment: env, Config: cfg}

	if c, ok := LookupConnector(datastore); ok {
		out.Extra = append(out.Extra, ExtraFile{
			Handle:      c.Handle,
			Description: "Database configuration file",
			Content:     c.Build(ds),
		})
	} else if datastore != "" {
		out.Hints = append(out.Hints, fmt.Sprintf(
			"No configuration template is known for %s; configure the connector by hand.", datastore))
	}

	if meta.Bool("client.create") {
		out.Hints = append(out.Hints, fmt.Sprintf(
			"Remember to create the %s client %q once API is running.",
			accessTypeOrDefault(meta.String("client.accessType")), meta.String("client.clientId")))
	}

	return out, nil
}

func accessTypeOrDefault(t string) string {
	if t == "" {
		return "user"
	}
	return t
}

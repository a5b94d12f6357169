package products

import (
	"github.com/dadi/cli/internal/config/wizard"
)

// CDN is DADI CDN.
var CDN = register(&Product{
	Name:        "cdn",
	Package:     "@dadi/cdn",
	Title:       "DADI CDN setup",
	Description: "CDN configuration file",
	Steps:       cdnSteps,
	Schema:      cdnSchema,
	Finalize:    finalizeDefault,
})

func cdnSteps(src Sources) []wizard.Step {
	https := equals("server.protocol", "https")

	return []wizard.Step{
		{
			Text: "Let's start by configuring the web server that DADI CDN will run on.",
			Questions: []wizard.Question{
				{Name: "server.name", Message: "What is the name of this CDN instance?"},
				{
					Name:    "server.protocol",
					Type:    wizard.TypeList,
					Message: "What protocol should this CDN instance run on?",
					Choices: protocolChoices,
					Default: "https",
				},
				{Name: "server.sslPassphrase", Message: "What is the passphrase of the SSL key you'd like to use?", Condition: https},
				{Name: "server.sslPrivateKeyPath", Message: "What is the path to the filename of the SSL private key?", Condition: https},
				{Name: "server.sslCertificatePath", Message: "What is the path to the filename of the SSL certificate?", Condition: https},
				{Name: "server.host", Message: "What is the IP address the application should run on?"},
				{Name: "server.port", Message: "What is the port number the application should run on?"},
			},
		},
		{
			Text: "Time to configure the sources that CDN will use to retrieve images.",
			Questions: append(sourceQuestions(src, "images", "images"),
				wizard.Question{
					Name: "images.remote.allowFullURL",
					Message: "Would you like to allow remote images to be retrieved from any remote URL? " +
						"This would allow consumers to load images from URLs like `http://your-cdn.com/http://somedomain.tech/image.jpg`.",
					Condition: isTrue("images.remote.enabled"),
				}),
		},
		{
			Text:      "Great! Let's now define how CDN handles other assets (e.g. CSS, JS or fonts)",
			Questions: sourceQuestions(src, "assets", "assets"),
		},
		{
			Text: "Let's now look at caching, which is crucial to ensure that CDN delivers images and assets in a performant way.",
			Questions: append([]wizard.Question{
				{Name: "caching.ttl", Message: "What is the time-to-live (TTL), in seconds, of cached items?"},
			}, cachingQuestions()...),
		},
		{
			Text: "Super. You also need to configure the credentials for authenticated consumers to use via oAuth.",
			Questions: []wizard.Question{
				{Name: "auth.clientId", Message: "What ID should authenticated clients use?"},
				{Name: "auth.secret", Message: "What secret should authenticated clients use?"},
				{Name: "auth.tokenTtl", Message: "What is the time-to-live (TTL), in seconds, for oAuth tokens?"},
			},
		},
		{
			Text: "Almost there! A couple more questions about your CDN installation.",
			Questions: append([]wizard.Question{
				{Name: "cluster", Message: "Would you like DADI CDN to run in cluster mode, starting a worker for each CPU core?"},
			}, environmentQuestions()...),
		},
	}
}

// sourceQuestions asks where CDN loads a kind of file from: the local
// filesystem, S3 or a remote URL.
func sourceQuestions(src Sources, prefix, noun string) []wizard.Question {
	questions := []wizard.Question{
		{Name: prefix + ".directory.enabled", Message: "Would you like to load " + noun + " from the local filesystem?"},
		{
			Name:      prefix + ".directory.path",
			Message:   "What is the path to the " + noun + " directory?",
			Condition: isTrue(prefix + ".directory.enabled"),
		},
		{Name: prefix + ".s3.enabled", Message: "Would you like to load " + noun + " from Amazon S3?"},
	}
	questions = append(questions, s3Questions(src, prefix+".s3", isTrue(prefix+".s3.enabled"))...)
	return append(questions,
		wizard.Question{Name: prefix + ".remote.enabled", Message: "Would you like to load " + noun + " from a remote URL?"},
		wizard.Question{
			Name: prefix + ".remote.path",
			Message: "The base URL to load remote " + noun + " from (e.g. if set to `http://somedomain.tech`, " +
				"accessing `/car.jpg` will retrieve `http://somedomain.tech/car.jpg`)",
			Condition: isTrue(prefix + ".remote.enabled"),
		},
	)
}

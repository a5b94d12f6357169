package products

import "github.com/dadi/cli/internal/config/schema"

func mergeSchemas(schemas ...schema.Schema) schema.Schema {
	out := schema.Schema{}
	for _, s := range schemas {
		out = schema.Merge(out, s)
	}
	return out
}

var environments = schema.Enum{Choices: []any{"production", "development", "test", "qa"}}

func protocolField(def string) schema.Field {
	return schema.Field{
		Format:  schema.Enum{Choices: []any{"http", "https"}},
		Default: def,
		Doc:     "The protocol the web application will use",
	}
}

func cachingFields(dirDefault string) schema.Schema {
	return schema.Schema{
		"caching.directory.enabled": {Format: schema.Boolean{}, Default: true, Doc: "If enabled, cache files will be saved to the filesystem"},
		"caching.directory.path":    {Format: schema.Text{}, Default: dirDefault, Doc: "The relative path to the cache directory"},
		"caching.redis.enabled":     {Format: schema.Boolean{}, Default: false, Doc: "If enabled, cache files will be saved to the specified Redis server"},
		"caching.redis.host":        {Format: schema.Text{}, Default: "127.0.0.1", Doc: "The Redis server host"},
		"caching.redis.port":        {Format: schema.Number{}, Default: 6379, Doc: "The port for the Redis server"},
		"caching.redis.password":    {Format: schema.Text{}, Default: "", Doc: "The password for the Redis server"},
	}
}

func s3Fields(prefix string) schema.Schema {
	return schema.Schema{
		prefix + ".accessKey":  {Format: schema.Text{}, Default: "", Doc: "The access key used to connect to the S3 bucket"},
		prefix + ".secretKey":  {Format: schema.Text{}, Default: "", Doc: "The secret used to connect to the S3 bucket"},
		prefix + ".bucketName": {Format: schema.Text{}, Default: "", Doc: "The S3 bucket name"},
		prefix + ".region":     {Format: schema.Text{}, Default: "eu-west-1", Doc: "The S3 region"},
	}
}

var apiSchema = mergeSchemas(schema.Schema{
	"app.name":           {Format: schema.Text{}, Default: "DADI API Repo Default", Doc: "The application name"},
	"server.host":        {Format: schema.Text{}, Default: "0.0.0.0", Doc: "Accept connections on the specified address"},
	"server.port":        {Format: schema.Number{}, Default: 8000, Doc: "Accept connections on the specified port"},
	"server.protocol":    protocolField("http"),
	"publicUrl.host":     {Format: schema.Text{}, Doc: "The host of the URL where the API instance can be publicly accessed at"},
	"publicUrl.port":     {Format: schema.Number{}, Doc: "The port of the URL where the API instance can be publicly accessed at"},
	"publicUrl.protocol": protocolField("http"),
	"datastore":          {Format: schema.Text{}, Default: "@dadi/api-mongodb", Doc: "The npm package name of the data connector to use"},

	"_meta.datastore.port": {Format: schema.Number{}, Doc: "The database server port"},

	"media.storage":  {Format: schema.Enum{Choices: []any{"disk", "s3", "none"}}, Default: "disk", Doc: "Determines the storage type for uploads"},
	"media.basePath": {Format: schema.Text{}, Default: "workspace/media", Doc: "The base path for uploaded media"},

	"env": {Format: environments, Default: "development", Doc: "The application environment"},
}, cachingFields("./cache/api"), s3Fields("media.s3"))

var cdnSchema = mergeSchemas(schema.Schema{
	"server.name":               {Format: schema.Text{}, Default: "DADI (CDN)", Doc: "Server name"},
	"server.protocol":           protocolField("http"),
	"server.host":               {Format: schema.Text{}, Default: "0.0.0.0", Doc: "Server IP address"},
	"server.port":               {Format: schema.Number{}, Default: 8001, Doc: "Server port number"},
	"server.sslPassphrase":      {Format: schema.Text{}, Default: "", Doc: "The passphrase of the SSL private key"},
	"server.sslPrivateKeyPath":  {Format: schema.Text{}, Default: "", Doc: "The filename of the SSL private key"},
	"server.sslCertificatePath": {Format: schema.Text{}, Default: "", Doc: "The filename of the SSL certificate"},

	"images.directory.enabled":   {Format: schema.Boolean{}, Default: false, Doc: "If true, image files will be loaded from the filesystem"},
	"images.directory.path":      {Format: schema.Text{}, Default: "./images", Doc: "The path to the image directory"},
	"images.s3.enabled":          {Format: schema.Boolean{}, Default: false, Doc: "If true, image files will be requested from Amazon S3"},
	"images.remote.enabled":      {Format: schema.Boolean{}, Default: false, Doc: "If true, image files will be requested from a remote host"},
	"images.remote.path":         {Format: schema.Text{}, Default: "", Doc: "The remote host to request images from"},
	"images.remote.allowFullURL": {Format: schema.Boolean{}, Default: true, Doc: "If true, images can be loaded from any remote URL"},

	"assets.directory.enabled": {Format: schema.Boolean{}, Default: false, Doc: "If true, asset files will be loaded from the filesystem"},
	"assets.directory.path":    {Format: schema.Text{}, Default: "./public", Doc: "The path to the assets directory"},
	"assets.s3.enabled":        {Format: schema.Boolean{}, Default: false, Doc: "If true, asset files will be requested from Amazon S3"},
	"assets.remote.enabled":    {Format: schema.Boolean{}, Default: false, Doc: "If true, asset files will be requested from a remote host"},
	"assets.remote.path":       {Format: schema.Text{}, Default: "", Doc: "The remote host to request assets from"},

	"caching.ttl": {Format: schema.Number{}, Default: 3600, Doc: "The time-to-live, in seconds, of cached items"},

	"auth.clientId": {Format: schema.Text{}, Default: "1235488", Doc: "The client ID used to request an access token"},
	"auth.secret":   {Format: schema.Text{}, Default: "asd544see68e52", Doc: "The secret used to request an access token"},
	"auth.tokenTtl": {Format: schema.Number{}, Default: 1800, Doc: "The time-to-live, in seconds, of access tokens"},

	"cluster": {Format: schema.Boolean{}, Default: false, Doc: "If true, CDN runs in cluster mode, starting a worker for each CPU core"},
	"env":     {Format: environments, Default: "development", Doc: "The application environment"},
}, cachingFields("./cache/"), s3Fields("images.s3"), s3Fields("assets.s3"))

var publishSchema = schema.Schema{
	"server.host": {Format: schema.Text{}, Default: "0.0.0.0", Doc: "Accept connections on the specified address"},
	"server.port": {Format: schema.Number{}, Default: 3001, Doc: "Accept connections on the specified port"},
	"apis.0.port": {Format: schema.Number{}, Default: 443, Doc: "The port of the API instance"},
	"env":         {Format: environments, Default: "development", Doc: "The application environment"},
}

// Package products defines the setup wizards of the products the CLI can
// configure: their questions, built-in field schemas, the post-processing
// applied to the finished answers and the minimum installed versions they
// require.
package products

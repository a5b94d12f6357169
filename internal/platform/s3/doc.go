// Package s3 lists the buckets an S3 account can reach. The setup wizard
// offers them as choices when media uploads are stored on S3.
package s3

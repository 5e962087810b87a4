// Package storage connects to S3-compatible object storage holding TOA
// releases.
//
// Release locations of the form "s3://bucket/prefix/" are listed through the
// Client interface, which is the subset of the MinIO client that listing
// needs. Tests substitute mocks.Client.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	bucket, prefix, ok := storage.ParseLocation("s3://toas/releases/latest/")
//	exists, err := client.BucketExists(ctx, bucket)
package storage

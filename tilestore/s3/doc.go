// Package s3 provides an S3 implementation of the tilestore.Store interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3store.NewStore(s3.NewFromConfig(cfg), "my-bucket", "tiles/")
//
// # Features
//
//   - Multipart uploads and downloads for large payloads
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3

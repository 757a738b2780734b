// Package images implements the product image backfill pipeline: fetching a
// source image with a bounded timeout, flattening and re-encoding it as WebP,
// uploading it to object storage under a key derived from the specification
// id, and recording the public URL on the catalog record exactly once.
package images

// Package cache provides a small generic LRU cache.
//
// It keeps decoded screenshots around between flattens, so re-exporting a
// step after a tweak does not decode its image again:
//
//	images := cache.New[string, image.Image](16)
//	images.Set(path, img)
//	img, ok := images.Get(path)
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

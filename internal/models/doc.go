// Package models defines domain entities and persistence interfaces for the CloudFlix terminal client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs mirroring CloudFlix API payloads
//   - [Session] : The authenticated identity, kept verbatim from the signin response
//   - [Video], [Page] : Catalog entries and the server's pagination envelope
//   - [HistoryEntry], [WatchProgress] : Watch-history rows and resume state
//   - [Comment], [Rating], [RatingSummary] : Social data attached to videos
//   - [AdminUser], [UploadMetadata], [PaymentRequest] : Admin, upload, and billing payloads
//
// 2. Persistent Entities: Database-backed cache models with full lifecycle management
//   - [CachedVideo] : Locally cached catalog entries for offline listing
//   - [WatchEntry] : Locally cached watch history for offline listing and export
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models

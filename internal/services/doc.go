// package services wraps the CloudFlix REST endpoints in typed Go methods
//
// Every service issues its requests through [api.Client], the single
// authenticated chokepoint, so bearer injection and 401 handling are
// uniform across auth, catalog, history, social, admin, and billing calls.
package services

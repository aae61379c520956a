// Package services implements the client workflows on top of the API client
// and local storage: authentication, inventory, blood requests, profiles,
// transfers and donation offers.
//
// Services validate input before any network call and keep a non-owning
// cache of what the backend last returned. They are safe for concurrent use.
package services

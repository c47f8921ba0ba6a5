// Package services contains the application services behind the CLI:
// catalog browsing and editing, and user administration. Services validate
// form input before it reaches the remote API.
package services

// Package oauth implements the provider side of the Google installed-app
// authorisation-code flow on top of golang.org/x/oauth2.
package oauth

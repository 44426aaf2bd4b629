// Package api serves the link collection as JSON under /api.

// @title           linkboard API
// @version         1.0
// @description     Shared dashboard of quick links. Every call is unauthenticated.
// @BasePath        /api
package api

/*
Package pages serves the application's routes over HTTP.

Routes builds the nav.Table of the Index, Files and Result views,
each loading its HTML template the first time it is navigated to.
A *Handler navigates a fresh nav.Router over that table for every request,
seeded with the location the visitor's session last navigated to,
and renders the committed view within the layout under the document title
the navigation guards left behind.
*/
package pages

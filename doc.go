// Package main provides the entry point of GoCookingBlog, a server rendered
// recipe sharing website. Visitors browse recipes by category, search them and
// submit new recipes with an optional image. Recipes are kept in MongoDB or,
// for development, in a SQL database through gorm.
package main

// Package markdown renders country content bodies into styled HTML and
// imports Markdown files with front matter into country content sections.
package markdown

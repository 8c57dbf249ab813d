package dto

type Site struct {
	Name string
	URL  string
}

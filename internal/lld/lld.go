package lld

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/r2dtools/sitediscovery/internal/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Item is one discovered site in Zabbix low-level discovery format.
type Item struct {
	Name string `json:"{#NAME}"`
	URL  string `json:"{#URL}"`
}

type envelope struct {
	Data []Item `json:"data"`
}

func ConvertSites(sites []dto.Site) []Item {
	items := []Item{}

	for _, site := range sites {
		items = append(items, Item{Name: site.Name, URL: site.URL})
	}

	return items
}

// Marshal renders sites as a compact JSON array, or as {"data": [...]} when withDataProperty is set.
func Marshal(sites []dto.Site, withDataProperty bool) ([]byte, error) {
	items := ConvertSites(sites)

	if withDataProperty {
		return json.Marshal(envelope{Data: items})
	}

	return json.Marshal(items)
}

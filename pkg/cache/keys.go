package cache

import "fmt"

// ── key layout ──

const (
	KeyStationsAll        = "cws:all"
	KeySiteCollectionsAll = "site-collections:all"
	KeyUsersAll           = "users:all"
)

func KeyStation(id uint) string { return fmt.Sprintf("cws:%d", id) }

func KeySiteCollection(id uint) string { return fmt.Sprintf("site-collections:%d", id) }

func KeySiteCollectionsByStation(cwsID uint) string {
	return fmt.Sprintf("site-collections:cws:%d", cwsID)
}

func KeyUserMe(id uint) string { return fmt.Sprintf("users:me:%d", id) }

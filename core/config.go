package core

import (
	"strings"
	"time"
)

// Config is the runtime configuration shared by services
type Config struct {
	APIKey      string      `yaml:"apiKey"`
	FrontendURL string      `yaml:"frontendURL"`
	Collections Collections `yaml:"collections"`
	Modules     Modules     `yaml:"modules"`
	Image       Image       `yaml:"image"`
}

// Collections names the table backing each collection
type Collections struct {
	Users       string `yaml:"users"`
	Characters  string `yaml:"characters"`
	Submissions string `yaml:"submissions"`
	Campaigns   string `yaml:"campaigns"`
}

// Modules switches the optional route sets
type Modules struct {
	Voting    *bool `yaml:"voting"`
	Scheduler *bool `yaml:"scheduler"`
}

type Image struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  int    `yaml:"timeout"`  // seconds
	CacheTTL int    `yaml:"cacheTTL"` // seconds
}

// ParseCollections reads a comma separated list in the order
// users,characters,submissions,campaigns. Missing entries keep the default name.
func ParseCollections(list string) Collections {
	collections := Collections{}
	names := strings.Split(list, ",")
	targets := []*string{&collections.Users, &collections.Characters, &collections.Submissions, &collections.Campaigns}
	for i, target := range targets {
		if i < len(names) {
			*target = strings.TrimSpace(names[i])
		}
	}
	return collections.WithDefaults()
}

// WithDefaults fills empty collection names
func (c Collections) WithDefaults() Collections {
	if c.Users == "" {
		c.Users = DefaultUsersCollection
	}
	if c.Characters == "" {
		c.Characters = DefaultCharactersCollection
	}
	if c.Submissions == "" {
		c.Submissions = DefaultSubmissionsCollection
	}
	if c.Campaigns == "" {
		c.Campaigns = DefaultCampaignsCollection
	}
	return c
}

// VotingEnabled reports whether the voting routes are mounted. Defaults to true.
func (m Modules) VotingEnabled() bool {
	return m.Voting == nil || *m.Voting
}

// SchedulerEnabled reports whether the scheduler routes are mounted. Defaults to true.
func (m Modules) SchedulerEnabled() bool {
	return m.Scheduler == nil || *m.Scheduler
}

func (i Image) TimeoutDuration() time.Duration {
	if i.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(i.Timeout) * time.Second
}

// CacheExpiration is the memcached expiration in seconds. Defaults to one hour.
func (i Image) CacheExpiration() int32 {
	if i.CacheTTL <= 0 {
		return 3600
	}
	return int32(i.CacheTTL)
}

//go:build wireinject

package ceptor

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ceptorclub/ceptor/client"
	"github.com/ceptorclub/ceptor/core"

	"github.com/ceptorclub/ceptor/x/agent"
	"github.com/ceptorclub/ceptor/x/campaign"
	"github.com/ceptorclub/ceptor/x/character"
	"github.com/ceptorclub/ceptor/x/image"
	"github.com/ceptorclub/ceptor/x/socket"
	"github.com/ceptorclub/ceptor/x/submission"
	"github.com/ceptorclub/ceptor/x/user"
)

// Lv0
var userServiceProvider = wire.NewSet(user.NewService, user.NewRepository)
var characterServiceProvider = wire.NewSet(character.NewService, character.NewRepository)
var submissionServiceProvider = wire.NewSet(submission.NewService, submission.NewRepository)
var campaignServiceProvider = wire.NewSet(campaign.NewService, campaign.NewRepository)
var imageServiceProvider = wire.NewSet(image.NewService, client.NewClient)

// Lv1
var socketHandlerProvider = wire.NewSet(socket.NewHandler, socket.NewService, SetupImageService)
var agentProvider = wire.NewSet(
	agent.NewAgent,
	SetupUserService,
	SetupCharacterService,
	SetupSubmissionService,
	SetupCampaignService,
)

// -----------

func SetupUserService(db *gorm.DB, config core.Config) core.UserService {
	wire.Build(userServiceProvider)
	return nil
}

func SetupCharacterService(db *gorm.DB, config core.Config) core.CharacterService {
	wire.Build(characterServiceProvider)
	return nil
}

func SetupSubmissionService(db *gorm.DB, config core.Config) core.SubmissionService {
	wire.Build(submissionServiceProvider)
	return nil
}

func SetupCampaignService(db *gorm.DB, config core.Config) core.CampaignService {
	wire.Build(campaignServiceProvider)
	return nil
}

func SetupImageService(mc *memcache.Client, config core.Config) core.ImageService {
	wire.Build(imageServiceProvider)
	return nil
}

func SetupSocketManager(rdb *redis.Client) core.SocketManager {
	wire.Build(socket.NewManager)
	return nil
}

func SetupSocketHandler(mc *memcache.Client, manager core.SocketManager, config core.Config) socket.Handler {
	wire.Build(socketHandlerProvider)
	return nil
}

func SetupAgent(db *gorm.DB, manager core.SocketManager, config core.Config) core.AgentService {
	wire.Build(agentProvider)
	return nil
}

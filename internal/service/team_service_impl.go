package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
	"github.com/bagdasarian/team-dashboard/internal/saga"
	"github.com/bagdasarian/team-dashboard/internal/session"
	"go.uber.org/zap"
)

type teamService struct {
	teamRepo       repository.TeamRepository
	membershipRepo repository.MembershipRepository
	cache          *cache.Cache
	coordinator    *Coordinator
	session        *session.Session
	scope          scope
	logger         *zap.Logger
}

// NewTeamService создает новый экземпляр TeamService
func NewTeamService(
	teamRepo repository.TeamRepository,
	membershipRepo repository.MembershipRepository,
	c *cache.Cache,
	coordinator *Coordinator,
	identity Identity,
	sess *session.Session,
	logger *zap.Logger,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		cache:          c,
		coordinator:    coordinator,
		session:        sess,
		scope:          scope{identity: identity, session: sess},
		logger:         logger,
	}
}

// GetTeams загружает команды пользователя и синхронизирует с ними активную команду
const teamsReadAttempts = 3

func (s *teamService) GetTeams(ctx context.Context) ([]*domain.Team, error) {
	user, err := s.scope.user()
	if err != nil {
		return nil, err
	}

	key := cache.TeamsKey()
	var teams []*domain.Team
	for attempt := 0; attempt < teamsReadAttempts; attempt++ {
		generation := s.cache.Peek(key).Generation

		teams, err = cache.Get(ctx, s.cache, key, func(ctx context.Context) ([]*domain.Team, error) {
			return s.teamRepo.ListByUser(ctx, user.ID)
		})
		if err != nil {
			return nil, err
		}

		// список, инвалидированный во время загрузки, может содержать удаленную команду
		if s.cache.Peek(key).Generation == generation {
			s.session.SyncTeams(teams)
			return teams, nil
		}
	}

	s.logger.Debug("teams list invalidated during every read, active team not synced")
	return teams, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	if _, err := s.scope.user(); err != nil {
		return nil, err
	}
	return cache.Get(ctx, s.cache, cache.TeamKey(id), func(ctx context.Context) (*domain.Team, error) {
		return s.teamRepo.GetByID(ctx, id)
	})
}

// CreateTeam создает команду и членство владельца; при ошибке второго шага команда удаляется
func (s *teamService) CreateTeam(ctx context.Context, input domain.TeamInput) (*domain.Team, error) {
	var user *domain.User

	return Run(ctx, s.coordinator, Mutation[*domain.Team]{
		Name: "create team",
		Validate: func() (err error) {
			if user, err = s.scope.user(); err != nil {
				return err
			}
			return input.Validate()
		},
		Call: func(ctx context.Context) (*domain.Team, error) {
			team := &domain.Team{
				Name:        strings.TrimSpace(input.Name),
				Description: input.Description,
				Color:       input.Color,
				OwnerID:     user.ID,
			}

			create := saga.New("create team",
				func(ctx context.Context) error {
					return s.teamRepo.Create(ctx, team)
				},
				func(ctx context.Context) error {
					return s.membershipRepo.Upsert(ctx, &domain.TeamMember{
						TeamID: team.ID,
						UserID: user.ID,
						Role:   domain.RoleOwner,
					})
				},
				func(ctx context.Context) error {
					return s.teamRepo.Delete(ctx, team.ID)
				},
				s.logger,
			)
			if err := create.Run(ctx); err != nil {
				return nil, err
			}
			return team, nil
		},
		Invalidate: func(*domain.Team) []cache.Key {
			return []cache.Key{cache.TeamsKey()}
		},
		Success: "Team created",
	})
}

func (s *teamService) UpdateTeam(ctx context.Context, id string, update domain.TeamUpdate) (*domain.Team, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.Team]{
		Name: "update team",
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			return update.Validate()
		},
		Call: func(ctx context.Context) (*domain.Team, error) {
			return s.teamRepo.Update(ctx, id, update)
		},
		Invalidate: func(*domain.Team) []cache.Key {
			return []cache.Key{cache.TeamsKey()}
		},
		Success: "Team updated",
	})
}

// DeleteTeam удаляет членства, затем команду. Компенсации нет: если удаление команды
// не удалось, остается команда без участников.
func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	_, err := Run(ctx, s.coordinator, Mutation[struct{}]{
		Name: "delete team",
		Validate: func() error {
			_, err := s.scope.user()
			return err
		},
		Call: func(ctx context.Context) (struct{}, error) {
			remove := saga.New("delete team",
				func(ctx context.Context) error {
					return s.membershipRepo.RemoveAllByTeam(ctx, id)
				},
				func(ctx context.Context) error {
					return s.teamRepo.Delete(ctx, id)
				},
				nil,
				s.logger,
			)
			return struct{}{}, remove.Run(ctx)
		},
		Invalidate: func(struct{}) []cache.Key {
			return []cache.Key{
				cache.TeamsKey(),
				cache.TasksKey(id),
				cache.TaskBoardKey(id),
				cache.MeetingsKey(id),
				cache.LogsKey(id),
				cache.StatsKey(id),
			}
		},
		After: func(struct{}) {
			s.session.ClearIfActive(id)
		},
		Success: "Team deleted",
	})
	return err
}

func (s *teamService) GetMembers(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	if _, err := s.scope.user(); err != nil {
		return nil, err
	}
	return cache.Get(ctx, s.cache, cache.TeamMembersKey(teamID), func(ctx context.Context) ([]*domain.TeamMember, error) {
		return s.membershipRepo.ListByTeam(ctx, teamID)
	})
}

// AddMember добавляет участника, предварительно проверяя, что он еще не состоит в команде
func (s *teamService) AddMember(ctx context.Context, teamID, userID string, role domain.Role) (*domain.TeamMember, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.TeamMember]{
		Name: "add member",
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			if strings.TrimSpace(userID) == "" {
				return domain.NewValidationError("user_id", "user is required")
			}
			if role == "" {
				role = domain.RoleMember
			}
			if !role.Valid() || role == domain.RoleOwner {
				return domain.NewValidationError("role", "role must be admin or member")
			}
			return nil
		},
		Call: func(ctx context.Context) (*domain.TeamMember, error) {
			_, err := s.membershipRepo.Get(ctx, teamID, userID)
			if err == nil {
				return nil, domain.ErrAlreadyMember
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}

			member := &domain.TeamMember{TeamID: teamID, UserID: userID, Role: role}
			if err := s.membershipRepo.Add(ctx, member); err != nil {
				return nil, err
			}
			return member, nil
		},
		Invalidate: func(*domain.TeamMember) []cache.Key {
			return []cache.Key{cache.TeamMembersKey(teamID), cache.StatsKey(teamID)}
		},
		Success: "Member added",
	})
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	_, err := Run(ctx, s.coordinator, Mutation[struct{}]{
		Name: "remove member",
		Validate: func() error {
			_, err := s.scope.user()
			return err
		},
		Call: func(ctx context.Context) (struct{}, error) {
			member, err := s.membershipRepo.Get(ctx, teamID, userID)
			if err != nil {
				return struct{}{}, err
			}
			if member.Role == domain.RoleOwner {
				return struct{}{}, domain.ErrOwnerMembership
			}
			return struct{}{}, s.membershipRepo.Remove(ctx, teamID, userID)
		},
		Invalidate: func(struct{}) []cache.Key {
			return []cache.Key{cache.TeamMembersKey(teamID), cache.StatsKey(teamID)}
		},
		Success: "Member removed",
	})
	return err
}

func (s *teamService) UpdateMemberRole(ctx context.Context, teamID, userID string, role domain.Role) (*domain.TeamMember, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.TeamMember]{
		Name: "update member role",
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			if !role.Valid() || role == domain.RoleOwner {
				return domain.NewValidationError("role", "role must be admin or member")
			}
			return nil
		},
		Call: func(ctx context.Context) (*domain.TeamMember, error) {
			member, err := s.membershipRepo.Get(ctx, teamID, userID)
			if err != nil {
				return nil, err
			}
			if member.Role == domain.RoleOwner {
				return nil, domain.ErrOwnerMembership
			}
			return s.membershipRepo.UpdateRole(ctx, teamID, userID, role)
		},
		Invalidate: func(*domain.TeamMember) []cache.Key {
			return []cache.Key{cache.TeamMembersKey(teamID)}
		},
		Success: "Member role updated",
	})
}

package impl

import (
	"context"
	"testing"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	mockRepo "pawparadise/internal/mocks/repository"
	mockSvc "pawparadise/internal/mocks/service"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	return authServiceFixtures{
		service: NewAuthService(AuthServiceParams{
			UserRepo:     userRepo,
			Hasher:       hasher,
			TokenService: tokenService,
			Logger:       newDiscardLogger(),
		}),
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.SignupInput{Name: " Jane Doe ", Email: "Jane@Example.COM ", Password: "password123"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("password123").Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "jane@example.com" &&
				u.Name == "Jane Doe" &&
				u.Role == entity.RoleCustomer &&
				u.PasswordHash == "hashed" &&
				u.AvatarURL == entity.DefaultAvatarURL("Jane Doe") &&
				u.ID != uuid.Nil
		})).
		Return(nil)
	fx.tokenService.EXPECT().GenerateToken(mock.AnythingOfType("uuid.UUID"), entity.RoleCustomer).Return("signed-token", nil)

	output, err := fx.service.Signup(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, "jane@example.com", output.User.Email)
	assert.Equal(t, entity.RoleCustomer, output.User.Role)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "taken@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{Name: "A", Email: "taken@example.com", Password: "password123"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Signup_LostRace(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "race@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("password123").Return("hashed", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(domainerrors.ErrUserAlreadyExists)

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{Name: "A", Email: "race@example.com", Password: "password123"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()
	stored := &entity.User{ID: userID, Email: "jane@example.com", PasswordHash: "hashed", Role: entity.RoleAdmin}

	tests := []struct {
		name      string
		setup     func(fx authServiceFixtures, ctx context.Context)
		wantErr   error
		wantToken string
	}{
		{
			name: "valid credentials",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.userRepo.EXPECT().FindByEmail(ctx, "jane@example.com").Return(stored, nil)
				fx.hasher.EXPECT().Check("password123", "hashed").Return(true)
				fx.tokenService.EXPECT().GenerateToken(userID, entity.RoleAdmin).Return("token", nil)
			},
			wantToken: "token",
		},
		{
			name: "unknown email",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.userRepo.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, repository.ErrUserNotFound)
			},
			wantErr: domainerrors.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.userRepo.EXPECT().FindByEmail(ctx, "jane@example.com").Return(stored, nil)
				fx.hasher.EXPECT().Check("password123", "hashed").Return(false)
			},
			wantErr: domainerrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			tt.setup(fx, ctx)

			output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "JANE@example.com", Password: "password123"})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Invalid email or password.", err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, output.Token)
			assert.Equal(t, stored, output.User)
		})
	}
}

func TestAuthService_Me_NotFound(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Me(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_Authenticate(t *testing.T) {
	userID := uuid.New()

	t.Run("invalid token", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.tokenService.EXPECT().ValidateToken("bad").Return(nil, errors.New("signature is invalid"))

		_, err := fx.service.Authenticate(context.Background(), "bad")

		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("deleted user", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		fx.tokenService.EXPECT().ValidateToken("good").Return(&service.Claims{UserID: userID, Role: entity.RoleCustomer}, nil)
		fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Authenticate(ctx, "good")

		assert.ErrorIs(t, err, domainerrors.ErrUserNoLongerExists)
	})

	t.Run("role comes from the token", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		fx.tokenService.EXPECT().ValidateToken("good").Return(&service.Claims{UserID: userID, Role: entity.RoleAdmin}, nil)
		fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID, Role: entity.RoleCustomer}, nil)

		principal, err := fx.service.Authenticate(ctx, "good")

		require.NoError(t, err)
		assert.Equal(t, userID, principal.UserID)
		assert.True(t, principal.IsAdmin())
	})
}

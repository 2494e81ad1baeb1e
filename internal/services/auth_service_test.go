package services

import (
	"github.com/yukikurage/onestep-api/internal/models"
)

func (suite *ServiceTestSuite) TestSignup_CreatesDefaultCategory() {
	auth := NewAuthService(suite.repos.Users)

	user, err := auth.Signup(SignupInput{Username: "  carol ", Password: "password123"})
	suite.Require().NoError(err)
	suite.Equal("carol", user.Username)

	categories, err := suite.categories.ListCategories(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(categories, 1)
	suite.Equal(models.InitialRank, categories[0].Rank)

	second, err := suite.categories.CreateCategory(suite.ctx, CreateCategoryInput{UserID: user.ID})
	suite.Require().NoError(err)
	suite.Equal("0|i00000:", second.Rank)
}

func (suite *ServiceTestSuite) TestSignup_Validation() {
	auth := NewAuthService(suite.repos.Users)

	_, err := auth.Signup(SignupInput{Username: " ", Password: "password123"})
	suite.ErrorIs(err, ErrUsernameRequired)

	_, err = auth.Signup(SignupInput{Username: "dave", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)

	_, err = auth.Signup(SignupInput{Username: suite.user.Username, Password: "password123"})
	suite.ErrorIs(err, ErrUsernameTaken)
}

func (suite *ServiceTestSuite) TestLogin() {
	auth := NewAuthService(suite.repos.Users)
	_, err := auth.Signup(SignupInput{Username: "erin", Password: "password123"})
	suite.Require().NoError(err)

	user, err := auth.Login(LoginInput{Username: "erin", Password: "password123"})
	suite.Require().NoError(err)
	suite.Equal("erin", user.Username)

	_, err = auth.Login(LoginInput{Username: "erin", Password: "wrongpassword"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = auth.Login(LoginInput{Username: "nobody", Password: "password123"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	got, err := auth.GetUser(user.ID)
	suite.Require().NoError(err)
	suite.Equal(user.ID, got.ID)

	_, err = auth.GetUser(9999)
	suite.ErrorIs(err, ErrUserNotFound)
}

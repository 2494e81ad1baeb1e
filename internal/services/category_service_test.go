package services

import (
	"strings"
)

func (suite *ServiceTestSuite) categoryIDs() []uint64 {
	categories, err := suite.categories.ListCategories(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)
	ids := make([]uint64, len(categories))
	for i, category := range categories {
		ids[i] = category.ID
	}
	return ids
}

func (suite *ServiceTestSuite) TestCreateCategory() {
	work, err := suite.categories.CreateCategory(suite.ctx, CreateCategoryInput{
		UserID: suite.user.ID,
		Title:  ptr("  Work "),
		Color:  3,
	})
	suite.Require().NoError(err)
	suite.Equal("Work", *work.Title)
	suite.Equal("0|i00000:", work.Rank)
	suite.Equal([]uint64{suite.category.ID, work.ID}, suite.categoryIDs())
}

func (suite *ServiceTestSuite) TestCreateCategory_Validation() {
	_, err := suite.categories.CreateCategory(suite.ctx, CreateCategoryInput{UserID: suite.user.ID, Color: 9})
	suite.ErrorIs(err, ErrInvalidCategoryColor)

	_, err = suite.categories.CreateCategory(suite.ctx, CreateCategoryInput{UserID: suite.user.ID, Color: -1})
	suite.ErrorIs(err, ErrInvalidCategoryColor)

	_, err = suite.categories.CreateCategory(suite.ctx, CreateCategoryInput{
		UserID: suite.user.ID,
		Title:  ptr(strings.Repeat("t", 101)),
	})
	suite.ErrorIs(err, ErrCategoryTitleTooLong)

	suite.Len(suite.categoryIDs(), 1)
}

func (suite *ServiceTestSuite) TestUpdateCategory() {
	other := suite.createCategory(suite.user.ID)

	updated, err := suite.categories.UpdateCategory(suite.ctx, suite.user.ID, other.ID, UpdateCategoryInput{
		Title: ptr("Home"),
		Color: ptr(int16(8)),
		Move:  &MoveInput{NextID: &suite.category.ID},
	})
	suite.Require().NoError(err)
	suite.Equal("Home", *updated.Title)
	suite.Equal(int16(8), updated.Color)
	suite.Equal([]uint64{other.ID, suite.category.ID}, suite.categoryIDs())

	cleared, err := suite.categories.UpdateCategory(suite.ctx, suite.user.ID, other.ID, UpdateCategoryInput{ClearTitle: true})
	suite.Require().NoError(err)
	suite.Nil(cleared.Title)

	_, err = suite.categories.UpdateCategory(suite.ctx, suite.user.ID, other.ID, UpdateCategoryInput{Color: ptr(int16(42))})
	suite.ErrorIs(err, ErrInvalidCategoryColor)
}

func (suite *ServiceTestSuite) TestMoveCategory() {
	second := suite.createCategory(suite.user.ID)
	third := suite.createCategory(suite.user.ID)

	_, err := suite.categories.MoveCategory(suite.ctx, suite.user.ID, third.ID, MoveInput{
		PrevID: &suite.category.ID,
		NextID: &second.ID,
	})
	suite.Require().NoError(err)
	suite.Equal([]uint64{suite.category.ID, third.ID, second.ID}, suite.categoryIDs())

	_, err = suite.categories.MoveCategory(suite.ctx, suite.user.ID, 9999, MoveInput{PrevID: &second.ID})
	suite.ErrorIs(err, ErrCategoryNotFound)
}

func (suite *ServiceTestSuite) TestDeleteCategory_LeavesTodos() {
	todo := suite.createTodo("filed")

	_, err := suite.categories.DeleteCategory(suite.ctx, suite.user.ID, suite.category.ID)
	suite.Require().NoError(err)
	suite.Empty(suite.categoryIDs())

	got, err := suite.todos.GetTodo(suite.ctx, suite.user.ID, todo.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.category.ID, got.CategoryID)

	_, err = suite.categories.DeleteCategory(suite.ctx, suite.user.ID, suite.category.ID)
	suite.ErrorIs(err, ErrCategoryNotFound)
}

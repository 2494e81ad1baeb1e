package services

import (
	"strings"

	"github.com/yukikurage/onestep-api/internal/ordering"
	"github.com/yukikurage/onestep-api/internal/rank"
)

func (suite *ServiceTestSuite) TestCreateTodo_AppendsAtBottom() {
	first := suite.createTodo("first")
	second := suite.createTodo("second")

	suite.Equal("0|hzzzzz:", first.Rank)
	suite.Equal("0|i00000:", second.Rank)
	suite.Equal([]string{"first", "second"}, suite.todoContents())
}

func (suite *ServiceTestSuite) TestCreateTodo_Validation() {
	cases := []struct {
		name  string
		input CreateTodoInput
		err   error
	}{
		{"empty content", CreateTodoInput{Content: "   ", CategoryID: suite.category.ID}, ErrContentRequired},
		{"long content", CreateTodoInput{Content: strings.Repeat("a", 51), CategoryID: suite.category.ID}, ErrContentTooLong},
		{"bad due time", CreateTodoInput{Content: "x", CategoryID: suite.category.ID, DueTime: ptr("25:00")}, ErrInvalidDueTime},
		{"unknown category", CreateTodoInput{Content: "x", CategoryID: 9999}, ErrCategoryNotFound},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			tc.input.UserID = suite.user.ID
			_, err := suite.todos.CreateTodo(suite.ctx, tc.input)
			suite.ErrorIs(err, tc.err)
		})
	}
	suite.Empty(suite.todoContents())
}

func (suite *ServiceTestSuite) TestCreateTodo_RejectsDeletedCategory() {
	_, err := suite.categories.DeleteCategory(suite.ctx, suite.user.ID, suite.category.ID)
	suite.Require().NoError(err)

	_, err = suite.todos.CreateTodo(suite.ctx, CreateTodoInput{
		UserID:     suite.user.ID,
		Content:    "orphan",
		CategoryID: suite.category.ID,
	})
	suite.ErrorIs(err, ErrCategoryNotFound)
}

func (suite *ServiceTestSuite) TestCreateTodo_NormalizesDueTime() {
	todo, err := suite.todos.CreateTodo(suite.ctx, CreateTodoInput{
		UserID:     suite.user.ID,
		Content:    "standup",
		CategoryID: suite.category.ID,
		DueTime:    ptr("09:30"),
	})
	suite.Require().NoError(err)
	suite.Equal("09:30:00", *todo.DueTime)
}

func (suite *ServiceTestSuite) TestListTodos_AttachesSubTodosInRankOrder() {
	a := suite.createTodo("a")
	b := suite.createTodo("b")
	suite.createSubTodos(b.ID, "b1", "b2")
	suite.createSubTodos(a.ID, "a1")

	todos, err := suite.todos.ListTodos(suite.ctx, ListTodosInput{UserID: suite.user.ID})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 2)
	suite.Require().Len(todos[0].SubTodos, 1)
	suite.Require().Len(todos[1].SubTodos, 2)
	suite.Equal("a1", todos[0].SubTodos[0].Content)
	suite.Equal("b1", todos[1].SubTodos[0].Content)
	suite.Equal("b2", todos[1].SubTodos[1].Content)
}

func (suite *ServiceTestSuite) TestListTodos_DateRange() {
	_, err := suite.todos.ListTodos(suite.ctx, ListTodosInput{UserID: suite.user.ID, StartDate: date("2024-09-01")})
	suite.ErrorIs(err, ErrInvalidDateRange)

	_, err = suite.todos.ListTodos(suite.ctx, ListTodosInput{
		UserID:    suite.user.ID,
		StartDate: date("2024-09-30"),
		EndDate:   date("2024-09-01"),
	})
	suite.ErrorIs(err, ErrInvalidDateRange)

	inside, err := suite.todos.CreateTodo(suite.ctx, CreateTodoInput{
		UserID:     suite.user.ID,
		Content:    "inside",
		CategoryID: suite.category.ID,
		Date:       date("2024-09-10"),
	})
	suite.Require().NoError(err)
	suite.createTodo("undated")

	todos, err := suite.todos.ListTodos(suite.ctx, ListTodosInput{
		UserID:    suite.user.ID,
		StartDate: date("2024-09-01"),
		EndDate:   date("2024-09-30"),
	})
	suite.Require().NoError(err)
	suite.Require().Len(todos, 1)
	suite.Equal(inside.ID, todos[0].ID)
}

func (suite *ServiceTestSuite) TestMoveTodo_ToTop() {
	a := suite.createTodo("a")
	suite.createTodo("b")
	c := suite.createTodo("c")

	moved, err := suite.todos.MoveTodo(suite.ctx, suite.user.ID, c.ID, MoveInput{NextID: &a.ID})
	suite.Require().NoError(err)

	suite.Less(moved.Rank, a.Rank)
	suite.Equal([]string{"c", "a", "b"}, suite.todoContents())
}

func (suite *ServiceTestSuite) TestMoveTodo_Between() {
	a := suite.createTodo("a")
	b := suite.createTodo("b")
	c := suite.createTodo("c")

	moved, err := suite.todos.MoveTodo(suite.ctx, suite.user.ID, c.ID, MoveInput{PrevID: &a.ID, NextID: &b.ID})
	suite.Require().NoError(err)

	prev, _ := rank.Parse(a.Rank)
	next, _ := rank.Parse(b.Rank)
	got, err := rank.Parse(moved.Rank)
	suite.Require().NoError(err)
	suite.True(rank.ValidateOrder(&prev, &next, got))
	suite.Equal([]string{"a", "c", "b"}, suite.todoContents())
}

func (suite *ServiceTestSuite) TestMoveTodo_Errors() {
	a := suite.createTodo("a")
	b := suite.createTodo("b")
	c := suite.createTodo("c")

	_, err := suite.todos.MoveTodo(suite.ctx, suite.user.ID, a.ID, MoveInput{})
	suite.ErrorIs(err, ordering.ErrAmbiguousMove)

	_, err = suite.todos.MoveTodo(suite.ctx, suite.user.ID, a.ID, MoveInput{PrevID: &a.ID})
	suite.ErrorIs(err, ordering.ErrSelfAnchor)

	_, err = suite.todos.MoveTodo(suite.ctx, suite.user.ID, a.ID, MoveInput{PrevID: &c.ID, NextID: &b.ID})
	suite.ErrorIs(err, rank.ErrInvalidRange)

	_, err = suite.todos.DeleteTodo(suite.ctx, suite.user.ID, b.ID)
	suite.Require().NoError(err)
	_, err = suite.todos.MoveTodo(suite.ctx, suite.user.ID, a.ID, MoveInput{PrevID: &b.ID})
	suite.ErrorIs(err, ErrTodoNotFound)

	suite.Equal([]string{"a", "c"}, suite.todoContents())
}

func (suite *ServiceTestSuite) TestMoveTodo_OtherUsersAnchor() {
	mine := suite.createTodo("mine")

	bob := suite.createUser("bob")
	bobCategory := suite.createCategory(bob.ID)
	theirs, err := suite.todos.CreateTodo(suite.ctx, CreateTodoInput{UserID: bob.ID, Content: "theirs", CategoryID: bobCategory.ID})
	suite.Require().NoError(err)

	_, err = suite.todos.MoveTodo(suite.ctx, suite.user.ID, mine.ID, MoveInput{NextID: &theirs.ID})
	suite.ErrorIs(err, ErrTodoNotFound)

	_, err = suite.todos.GetTodo(suite.ctx, suite.user.ID, theirs.ID)
	suite.ErrorIs(err, ErrTodoNotFound)
}

func (suite *ServiceTestSuite) TestUpdateTodo_FieldsAndMove() {
	a := suite.createTodo("a")
	b := suite.createTodo("b")
	b.Date = date("2024-09-01")
	suite.Require().NoError(suite.repos.Todos.Save(suite.ctx, b))

	updated, err := suite.todos.UpdateTodo(suite.ctx, suite.user.ID, b.ID, UpdateTodoInput{
		Content:     ptr("renamed"),
		ClearDate:   true,
		IsCompleted: ptr(true),
		Move:        &MoveInput{NextID: &a.ID},
	})
	suite.Require().NoError(err)
	suite.Equal("renamed", updated.Content)
	suite.Nil(updated.Date)
	suite.True(updated.IsCompleted)
	suite.Equal([]string{"renamed", "a"}, suite.todoContents())
}

func (suite *ServiceTestSuite) TestUpdateTodo_FailedMoveRollsBackFields() {
	a := suite.createTodo("a")

	_, err := suite.todos.UpdateTodo(suite.ctx, suite.user.ID, a.ID, UpdateTodoInput{
		Content: ptr("renamed"),
		Move:    &MoveInput{PrevID: ptr(uint64(9999))},
	})
	suite.ErrorIs(err, ErrTodoNotFound)
	suite.Equal([]string{"a"}, suite.todoContents())
}

func (suite *ServiceTestSuite) TestDeleteTodo_CascadesToSubTodos() {
	todo := suite.createTodo("parent")
	suite.createSubTodos(todo.ID, "s1", "s2")

	deleted, err := suite.todos.DeleteTodo(suite.ctx, suite.user.ID, todo.ID)
	suite.Require().NoError(err)
	suite.True(deleted.DeletedAt.Valid)

	live, err := suite.repos.SubTodos.ListLive(suite.ctx, todo.ID)
	suite.Require().NoError(err)
	suite.Empty(live)

	_, err = suite.todos.GetTodo(suite.ctx, suite.user.ID, todo.ID)
	suite.ErrorIs(err, ErrTodoNotFound)

	_, err = suite.todos.DeleteTodo(suite.ctx, suite.user.ID, todo.ID)
	suite.ErrorIs(err, ErrTodoNotFound)
}

func (suite *ServiceTestSuite) TestDeleteTodo_AppendReusesTail() {
	suite.createTodo("a")
	b := suite.createTodo("b")
	_, err := suite.todos.DeleteTodo(suite.ctx, suite.user.ID, b.ID)
	suite.Require().NoError(err)

	c := suite.createTodo("c")
	suite.Equal(b.Rank, c.Rank)
}

func (suite *ServiceTestSuite) TestInbox() {
	undated := suite.createTodo("undated")

	dated, err := suite.todos.CreateTodo(suite.ctx, CreateTodoInput{
		UserID:     suite.user.ID,
		Content:    "dated",
		CategoryID: suite.category.ID,
		Date:       date("2024-09-01"),
	})
	suite.Require().NoError(err)
	suite.createSubTodos(dated.ID, "loose end")

	scheduled, err := suite.todos.CreateTodo(suite.ctx, CreateTodoInput{
		UserID:     suite.user.ID,
		Content:    "scheduled",
		CategoryID: suite.category.ID,
		Date:       date("2024-09-02"),
	})
	suite.Require().NoError(err)

	todos, err := suite.todos.Inbox(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)

	ids := make([]uint64, len(todos))
	for i, todo := range todos {
		ids[i] = todo.ID
	}
	suite.ElementsMatch([]uint64{undated.ID, dated.ID}, ids)
	suite.NotContains(ids, scheduled.ID)
}

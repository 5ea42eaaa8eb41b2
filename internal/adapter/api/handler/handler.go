package handler

import (
	"ordernest/internal/usecase"
)

var (
	authHandler  *AuthHandler
	userHandler  *UserHandler
	formHandler  *FormHandler
	orderHandler *OrderHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	formUseCase *usecase.FormUseCase,
	orderUseCase *usecase.OrderUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	formHandler = NewFormHandler(formUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetFormHandler() *FormHandler {
	return formHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

package controllers

// Controller handles accounts and auth.
type Controller struct{}

type RegistrationController struct{}

type ResultController struct{}

type ReviewController struct{}

type QueryController struct{}

type AdminController struct{}

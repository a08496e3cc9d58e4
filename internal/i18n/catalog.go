package i18n

// Message keys are grouped by dotted namespaces: api.* for handler-level
// responses and schemas.<payload>.* for validation issues.

var messagesEN = map[string]string{
	"api.serverError":             "Something went wrong, try again later",
	"api.invalidRequest":          "Invalid request",
	"api.notAuthorized":           "You are not authorized",
	"api.userIsNotAMember":        "You are not a member of this company",
	"api.invalidCompanyId":        "Company does not exist",
	"api.pageAndLimitAreRequired": "Page and limit query parameters are required",
	"api.companyDeleted":          "Company deleted",
	"api.stockDeleted":            "Stock deleted",
	"api.priceTypeDeleted":        "Price type deleted",
	"api.roleDeleted":             "Role deleted",
	"api.memberDeleted":           "Member removed",
	"api.invitationDeleted":       "Invitation deleted",
	"api.invitationNotFound":      "Invitation does not exist",
	"api.alreadyMember":           "You are already a member of this company",
	"api.invalidCredentials":      "Invalid email or password",
	"api.emailTaken":              "This email is already registered",
	"api.loggedOut":               "You have been logged out",

	"schemas.company.invalidId":          "Company identifier is required",
	"schemas.company.invalidName":        "Company name is required",
	"schemas.company.invalidTin":         "TIN must be exactly 10 characters long",
	"schemas.company.numericTin":         "TIN must contain only digits",
	"schemas.company.invalidDescription": "Description must be at least 50 characters long",

	"schemas.stock.invalidName": "Stock name is required",

	"schemas.priceType.invalidName":     "Price type name is required",
	"schemas.priceType.invalidCurrency": "Currency is required",

	"schemas.member.invalidRoleId": "Role is required",

	"schemas.invitation.invalidEmail":  "A valid email is required",
	"schemas.invitation.invalidRoleId": "Role is required",
	"schemas.invitation.invalidId":     "Invitation identifier is required",

	"mail.invitationSubject": "You have been invited to join %s",
	"mail.invitationBody":    "You have been invited to join %s. Sign in with this email address and accept the invitation to get started.",

	"schemas.role.invalidName":        "Role name is required",
	"schemas.role.invalidStockId":     "Stock is required",
	"schemas.role.invalidPriceTypeId": "Price type is required",

	"schemas.auth.invalidEmail":    "A valid email is required",
	"schemas.auth.invalidName":     "Name is required",
	"schemas.auth.invalidPassword": "Password must be at least 8 characters long",
}

var messagesRU = map[string]string{
	"api.serverError":             "Что-то пошло не так, попробуйте позже",
	"api.invalidRequest":          "Некорректный запрос",
	"api.notAuthorized":           "Вы не авторизованы",
	"api.userIsNotAMember":        "Вы не являетесь участником этой компании",
	"api.invalidCompanyId":        "Компания не существует",
	"api.pageAndLimitAreRequired": "Параметры page и limit обязательны",
	"api.companyDeleted":          "Компания удалена",
	"api.stockDeleted":            "Склад удалён",
	"api.priceTypeDeleted":        "Тип цены удалён",
	"api.roleDeleted":             "Роль удалена",
	"api.memberDeleted":           "Участник удалён",
	"api.invitationDeleted":       "Приглашение удалено",
	"api.invitationNotFound":      "Приглашение не существует",
	"api.alreadyMember":           "Вы уже являетесь участником этой компании",
	"api.invalidCredentials":      "Неверный email или пароль",
	"api.emailTaken":              "Этот email уже зарегистрирован",
	"api.loggedOut":               "Вы вышли из системы",

	"schemas.company.invalidId":          "Идентификатор компании обязателен",
	"schemas.company.invalidName":        "Название компании обязательно",
	"schemas.company.invalidTin":         "ИНН должен состоять ровно из 10 символов",
	"schemas.company.numericTin":         "ИНН должен содержать только цифры",
	"schemas.company.invalidDescription": "Описание должно содержать не менее 50 символов",

	"schemas.stock.invalidName": "Название склада обязательно",

	"schemas.priceType.invalidName":     "Название типа цены обязательно",
	"schemas.priceType.invalidCurrency": "Валюта обязательна",

	"schemas.member.invalidRoleId": "Роль обязательна",

	"schemas.invitation.invalidEmail":  "Требуется корректный email",
	"schemas.invitation.invalidRoleId": "Роль обязательна",
	"schemas.invitation.invalidId":     "Идентификатор приглашения обязателен",

	"mail.invitationSubject": "Вас пригласили присоединиться к %s",
	"mail.invitationBody":    "Вас пригласили присоединиться к компании %s. Войдите с этим адресом электронной почты и примите приглашение.",

	"schemas.role.invalidName":        "Название роли обязательно",
	"schemas.role.invalidStockId":     "Склад обязателен",
	"schemas.role.invalidPriceTypeId": "Тип цены обязателен",

	"schemas.auth.invalidEmail":    "Требуется корректный email",
	"schemas.auth.invalidName":     "Имя обязательно",
	"schemas.auth.invalidPassword": "Пароль должен содержать не менее 8 символов",
}

package i18n

var messages = map[string]map[string]string{
	English: {
		"project_liked":          "Project liked!",
		"project_unliked":        "Project unliked",
		"comment_posted":         "Your comment has been posted!",
		"login_successful":       "Login successful!",
		"registration_success":   "Registration successful! You can now log in.",
		"logged_out":             "You have been logged out.",
		"reset_link_sent":        "A password reset link has been sent to your email.",
		"reset_token_valid":      "Reset token is valid.",
		"password_reset":         "Your password has been reset!",
		"password_changed":       "Password changed successfully!",
		"profile_updated":        "Profile updated successfully!",
		"social_network_added":   "Social network added successfully!",
		"social_network_removed": "Social network removed successfully!",
		"project_created":        "Project created successfully!",
		"project_updated":        "Project updated successfully!",
		"project_deleted":        "Project deleted successfully!",
		"achievement_created":    "Achievement created successfully!",
		"achievement_updated":    "Achievement updated successfully!",
		"achievement_deleted":    "Achievement deleted successfully!",
		"experience_created":     "Experience created successfully!",
		"experience_updated":     "Experience updated successfully!",
		"experience_deleted":     "Experience deleted successfully!",
		"category_created":       "Category created successfully!",
		"category_updated":       "Category updated successfully!",
		"category_deleted":       "Category deleted successfully!",
		"about_updated":          "About Me section updated successfully!",
		"language_changed":       "Language changed.",
	},
	Portuguese: {
		"project_liked":          "Projeto curtido!",
		"project_unliked":        "Curtida removida",
		"comment_posted":         "Seu comentário foi publicado!",
		"login_successful":       "Login realizado com sucesso!",
		"registration_success":   "Cadastro realizado! Agora você pode entrar.",
		"logged_out":             "Você saiu da sua conta.",
		"reset_link_sent":        "Um link para redefinir a senha foi enviado para o seu e-mail.",
		"reset_token_valid":      "O token de redefinição é válido.",
		"password_reset":         "Sua senha foi redefinida!",
		"password_changed":       "Senha alterada com sucesso!",
		"profile_updated":        "Perfil atualizado com sucesso!",
		"social_network_added":   "Rede social adicionada com sucesso!",
		"social_network_removed": "Rede social removida com sucesso!",
		"project_created":        "Projeto criado com sucesso!",
		"project_updated":        "Projeto atualizado com sucesso!",
		"project_deleted":        "Projeto excluído com sucesso!",
		"achievement_created":    "Conquista criada com sucesso!",
		"achievement_updated":    "Conquista atualizada com sucesso!",
		"achievement_deleted":    "Conquista excluída com sucesso!",
		"experience_created":     "Experiência criada com sucesso!",
		"experience_updated":     "Experiência atualizada com sucesso!",
		"experience_deleted":     "Experiência excluída com sucesso!",
		"category_created":       "Categoria criada com sucesso!",
		"category_updated":       "Categoria atualizada com sucesso!",
		"category_deleted":       "Categoria excluída com sucesso!",
		"about_updated":          "Seção Sobre Mim atualizada com sucesso!",
		"language_changed":       "Idioma alterado.",
	},
}

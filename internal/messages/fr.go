package messages

// ─── Messagerie ──────────────────────────────────────────────────────────────

const (
	NewMessageTitle = "Nouveau message"
	NewMessageBody  = "%s vous a envoyé un message."
)

// ─── Alertes ─────────────────────────────────────────────────────────────────

const (
	AlertRaisedTitle = "Alerte à proximité"
	AlertRaisedBody  = "%s : %s"

	AlertCriticalTitle = "Alerte urgente"
)

// ─── Amis ────────────────────────────────────────────────────────────────────

const (
	FriendRequestTitle = "Nouvelle demande d'ami"
	FriendRequestBody  = "%s souhaite vous ajouter comme ami."

	FriendAcceptTitle = "Demande d'ami acceptée"
	FriendAcceptBody  = "%s a accepté votre demande d'ami."
)

// ─── Événements ──────────────────────────────────────────────────────────────

const (
	EventCreatedTitle = "Nouvel événement près de chez vous"
	EventCreatedBody  = "L'événement « %s » vient d'être publié."

	EventUpdatedTitle = "Événement mis à jour"
	EventUpdatedBody  = "L'événement « %s » a été modifié."
)

// ─── Lives ───────────────────────────────────────────────────────────────────

const (
	LivestreamStartedTitle = "Live en cours"
	LivestreamStartedBody  = "%s a démarré un live près de chez vous."
)

package notification

import (
	"fmt"
	"time"
)

// Mail body builders. Wording mirrors the operational mails the business
// already sends; recipients are Spanish-speaking customers.

func NewUserAdminSubject() string {
	return "Nuevo usuario registrado"
}

func NewUserAdminBody(firstName, lastName, email string) string {
	return fmt.Sprintf(
		"Se ha registrado un nuevo usuario:\n\nNombre del usuario: %s\nApellido del usuario: %s\nCorreo: %s",
		firstName, lastName, email,
	)
}

func WelcomeSubject() string {
	return "¡Bienvenido a PorEncargo!"
}

func WelcomeBody(firstName, lastName, casilleroCode string) string {
	return fmt.Sprintf(`Buenas Tardes

Te informamos que se realizó con éxito la apertura de tu casillero con código:
(%s)

Cuando realices una compra, por favor envíanos el número de tracking para rastrearlo.

Recuerda que todas las cajas deben venir marcadas con tu nombre y código de casillero así:
NAME: %s %s / %s

La dirección de envío de tus paquetes es:

ADDRESS: 7705 NW 46th ST
CITY: DORAL
STATE: FLORIDA
ZIP: 33195
UNITED STATES

Te recomendamos agregar el código de tu casillero en el área de "número de suite o apto" al momento de ingresar la dirección.

¡Ya puedes utilizar tu casillero!

Quedamos atentos a cualquier inquietud.

Cordialmente,
PorEncargo.co`, casilleroCode, firstName, lastName, casilleroCode)
}

func PreAlertAdminSubject() string {
	return "Nueva prealerta registrada"
}

func PreAlertAdminBody(firstName, lastName, email, parcelName, trackingNumber string) string {
	return fmt.Sprintf(
		"Se ha registrado una nueva prealerta:\n\nUsuario: %s %s\nCorreo: %s\nPaquete: %s\nNúmero de guía: %s",
		firstName, lastName, email, parcelName, trackingNumber,
	)
}

func StatusChangeSubject(parcelName string) string {
	return fmt.Sprintf("Actualización de tu paquete: %s", parcelName)
}

// StatusChangeBody renders the status-change notification as HTML, carrying
// both the previous and the new status label.
func StatusChangeBody(userFirstName, parcelName, trackingNumber, previousStatus, newStatus string) string {
	if trackingNumber == "" {
		trackingNumber = "N/A"
	}
	return fmt.Sprintf(`<html>
<body>
<p>Hola %s,</p>
<p>El estado de tu paquete <strong>%s</strong> (guía %s) ha cambiado:</p>
<p>%s &rarr; <strong>%s</strong></p>
<p>Puedes rastrear tu orden en cualquier momento con tu correo y número de guía.</p>
<p>PorEncargo.co &copy; %d</p>
</body>
</html>`, userFirstName, parcelName, trackingNumber, previousStatus, newStatus, time.Now().Year())
}

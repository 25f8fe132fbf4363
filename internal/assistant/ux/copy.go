// Package ux holds the localized assistant copy. Keys resolve against the
// session's preferred language, fall back to English, then to the raw key so
// a missing entry is visible instead of silent.
package ux

import (
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Params are the {placeholder} substitutions for a copy template. Values are
// pre-formatted strings; numeric formatting happens at the call site.
type Params map[string]string

var copyTable = map[string]map[string]string{
	"en": {
		// Generic
		"fallback_ok":            "Okay.",
		"follow_up":              "",
		"product_not_found":      "I couldn't find product {product_id}.",
		"cart_empty":             "Your cart is empty.",
		"need_product_id_add":    `Please tell me the product ID (e.g. "Add 301").`,
		"need_product_id_remove": `Please tell me the product ID (e.g. "Remove 302").`,
		"need_product_id_or_name": "Please tell me which product (ID or name).",
		"out_of_scope":            "I can help you browse perfumes, manage your cart and checkout. Try \"show me the catalog\".",
		"welcome":                 "Hi! I'm your perfume shopping assistant. Ask me for the catalog, recommendations, or manage your cart.",
		"ended":                   "This conversation has ended. Start a new session to keep shopping.",
		"help_message": "I can help you with:\n" +
			"- Browse the catalog (\"show me the catalog\")\n" +
			"- Product details (\"show me 301\")\n" +
			"- Recommendations (\"recommend something woody under 100€\")\n" +
			"- Cart (\"add 2 of 301\", \"remove 302\", \"view cart\")\n" +
			"- Checkout (\"checkout\")",

		// Catalog / product details / recommend
		"catalog_header":         "Available perfumes:",
		"catalog_next":           "",
		"catalog_item":           "- [{product_id}] {brand}{name} — €{price}",
		"product_id_invalid":     "Please specify a valid product ID.",
		"product_details_header": "Product details for {product_label}:",
		"product_price":          "- Price: €{price}",
		"product_concentration":  "- Concentration: {value}",
		"product_size":           "- Size: {value} ml",
		"product_family":         "- Olfactory family: {value}",
		"product_description":    "- Description: {value}",
		"product_details_next":   `You can say: "Add it to the cart" or "Back to catalog".`,

		"detail_multiple_found":      "I found several matching products:",
		"detail_multiple_reply_hint": "Reply with the number, the ID, or the name.",
		"detail_not_found_by_name":   "I couldn't find a product with that name.",

		"recommend_header":               "Recommended perfumes:",
		"recommend_next":                 "",
		"recommend_clarification_prompt": "What are you looking for? Tell me a family (woody, citrus, floral...), who it's for, or a budget.",
		"recommend_no_results_in_price":  "I have no {family_label} perfumes in that price range.",
		"recommend_but_have_family":      "But here is what I have in {family_label}:",
		"recommend_no_family":            "I have no {family_label} perfumes in the catalog.",
		"family_generic_label":           "that kind of",

		// Cart actions
		"add_ok":                   "Done ✅ I added {added} unit(s) of {product_label} to your cart{note}.",
		"add_no_stock":             "Sorry — {product_label} is out of stock right now.",
		"remove_ok":                "All set ✅ I removed {removed} unit(s) of {product_label} from your cart{note}.",
		"remove_not_in_cart":       "{product_id} is not in your cart.",
		"cart_header":              "Here’s what you have in your cart:",
		"cart_total":               "Total: €{total}",
		"cart_partial_add_note":    " (Requested {qty}, added {added} due to stock limits.)",
		"cart_partial_remove_note": " (Requested {qty}, removed {removed} because you had fewer units in the cart.)",
		"cart_next_after_action":   "",
		"cart_next_after_add":      "",

		"multiple_matches_which_add":    "I found several matches. Which one do you want to add?",
		"multiple_matches_which_remove": "You have several products. Which one do you want to remove?",
		"reply_number_id":               "Reply with the number or the ID.",
		"reply_number_id_name":          "Reply with the number, the ID, or the name.",
		"pick_number_id_or_name":        "Reply with the number, the ID, or the name.",

		"qty_set_ok":            "Quantity updated ✅ [{product_id}] {brand} {name} x{qty}\nTotal: €{total}",
		"qty_update_failed":     "I couldn't update the quantity.",
		"adjust_multiple_found": "Several products match. Which quantity should I change?",
		"adjust_which_of_these": "Which of these should I change?",

		// Bulk
		"bulk_none":             "I couldn’t find cart operations to apply.",
		"bulk_added":            "✅ Added {added} of {product_label}{note}",
		"bulk_removed":          "✅ Removed {removed} of {product_label}",
		"bulk_not_found":        "❌ Product {product_id} was not found.",
		"bulk_no_stock":         "❌ No stock available for {product_label}.",
		"bulk_not_in_cart":      "❌ {product_label} is not in your cart.",
		"bulk_cannot_remove":    "❌ I can't remove {qty} of {product_label} because you only have {current_qty}.",
		"bulk_total":            "Current total: €{total}",
		"bulk_next":             "",
		"bulk_partial_add_note": " (Requested {qty}, added {added} due to stock limits.)",
		"bulk_remove_failed":    "❌ Could not remove {product_label}.",
		"bulk_reply_number_id":  "Reply with the number or the ID to continue with your order.",

		// Checkout
		"checkout_confirm":            "You're about to checkout. Do you want to continue? (yes/no)",
		"checkout_cancelled":          "Checkout cancelled.",
		"checkout_ask_yesno":          "Please reply with 'yes' or 'no'.",
		"checkout_form_open":          "Perfect ✅ Opening the checkout form for your shipping details.",
		"checkout_form_open_reminder": "The shipping form is still open. Please fill it in to continue.",
		"checkout_review_prompt": "Perfect ✅ Here is your order summary:\n\n" +
			"- Name: {full_name}\n- Address: {address_line1}\n- City: {city}\n" +
			"- Postal code: {postal_code}\n- Phone: {phone}\n\n" +
			"Do you confirm the purchase? (yes/no)",
		"checkout_review_cancelled": "Okay 👍 I cancelled the order. Back to your cart.",
		"order_confirmed": "Order confirmed ✅\n\nThanks for your purchase 🙌\n" +
			"Do you want to see the catalog, recommendations, or your cart?",

		"checkout_form_missing_fields_error": "Missing required fields. Please review the form.",
		"checkout_form_missing_fields_msg":   "Oops 😅 some required fields are missing. Please complete the form and submit again.",
		"checkout_form_postal_numeric_error": "Postal code must contain only digits.",
		"checkout_form_postal_numeric_msg":   "The postal code doesn't look right — digits only, please.",
		"checkout_form_phone_numeric_error":  "Phone must contain only digits.",
		"checkout_form_phone_numeric_msg":    "The phone number doesn't look right — digits only, please.",
	},
	"es": {
		// Generic
		"fallback_ok":            "Vale.",
		"follow_up":              "",
		"product_not_found":      "No encuentro el producto {product_id}.",
		"cart_empty":             "Tu carrito está vacío.",
		"need_product_id_add":    `Dime el ID del producto (ej: "Añade 301").`,
		"need_product_id_remove": `Dime el ID del producto (ej: "Quita 302").`,
		"need_product_id_or_name": "Dime qué producto (ID o nombre).",
		"out_of_scope":            "Puedo ayudarte a ver perfumes, gestionar tu carrito y finalizar la compra. Prueba \"muéstrame el catálogo\".",
		"welcome":                 "¡Hola! Soy tu asistente de perfumes. Pídeme el catálogo, recomendaciones o gestiona tu carrito.",
		"ended":                   "Esta conversación ha terminado. Abre una sesión nueva para seguir comprando.",
		"help_message": "Puedo ayudarte con:\n" +
			"- Ver el catálogo (\"muéstrame el catálogo\")\n" +
			"- Detalles de producto (\"muéstrame el 301\")\n" +
			"- Recomendaciones (\"recomiéndame algo amaderado por menos de 100€\")\n" +
			"- Carrito (\"añade 2 del 301\", \"quita el 302\", \"ver carrito\")\n" +
			"- Finalizar compra (\"pagar\")",

		// Catalog / product details / recommend
		"catalog_header":         "Perfumes disponibles:",
		"catalog_next":           "",
		"catalog_item":           "- [{product_id}] {brand}{name} — €{price}",
		"product_id_invalid":     "Por favor, indica un ID de producto válido.",
		"product_details_header": "Detalles del producto {product_label}:",
		"product_price":          "- Precio: €{price}",
		"product_concentration":  "- Concentración: {value}",
		"product_size":           "- Tamaño: {value} ml",
		"product_family":         "- Familia olfativa: {value}",
		"product_description":    "- Descripción: {value}",
		"product_details_next":   `Puedes decir: "Añádelo al carrito" o "Volver al catálogo".`,

		"detail_multiple_found":      "He encontrado varios productos:",
		"detail_multiple_reply_hint": "Responde con el número, el ID o el nombre.",
		"detail_not_found_by_name":   "No encuentro ningún producto con ese nombre.",

		"recommend_header":               "Perfumes recomendados:",
		"recommend_next":                 "",
		"recommend_clarification_prompt": "¿Qué buscas? Dime una familia (amaderado, cítrico, floral...), para quién es, o un presupuesto.",
		"recommend_no_results_in_price":  "No tengo perfumes {family_label} en ese rango de precio.",
		"recommend_but_have_family":      "Pero esto es lo que tengo en {family_label}:",
		"recommend_no_family":            "No tengo perfumes {family_label} en el catálogo.",
		"family_generic_label":           "de ese tipo",

		// Cart actions
		"add_ok":                   "¡Hecho! ✅ Añadí {added} unidad(es) de {product_label} al carrito{note}.",
		"add_no_stock":             "Lo siento — ahora mismo no hay stock de {product_label}.",
		"remove_ok":                "Listo ✅ Quité {removed} unidad(es) de {product_label} del carrito{note}.",
		"remove_not_in_cart":       "El producto {product_id} no está en tu carrito.",
		"cart_header":              "Esto es lo que llevas en el carrito:",
		"cart_total":               "Total: €{total}",
		"cart_partial_add_note":    " (Pediste {qty}, añadí {added} por límite de stock.)",
		"cart_partial_remove_note": " (Pediste quitar {qty}, pero solo pude quitar {removed} porque tenías menos.)",
		"cart_next_after_action":   "",
		"cart_next_after_add":      "",

		"multiple_matches_which_add":    "He encontrado varias opciones. ¿Cuál quieres añadir?",
		"multiple_matches_which_remove": "Tienes varios productos. ¿Cuál quieres quitar?",
		"reply_number_id":               "Responde con el número o el ID.",
		"reply_number_id_name":          "Responde con el número, el ID o el nombre.",
		"pick_number_id_or_name":        "Responde con el número, el ID o el nombre.",

		"qty_set_ok":            "Cantidad actualizada ✅ [{product_id}] {brand} {name} x{qty}\nTotal: €{total}",
		"qty_update_failed":     "No pude actualizar la cantidad.",
		"adjust_multiple_found": "Hay varios productos que coinciden. ¿Cuál cantidad cambio?",
		"adjust_which_of_these": "¿Cuál de estos cambio?",

		// Bulk
		"bulk_none":             "No he encontrado operaciones de carrito para aplicar.",
		"bulk_added":            "✅ Añadí {added} de {product_label}{note}",
		"bulk_removed":          "✅ Quité {removed} de {product_label}",
		"bulk_not_found":        "❌ El producto {product_id} no existe.",
		"bulk_no_stock":         "❌ No hay stock disponible para {product_label}.",
		"bulk_not_in_cart":      "❌ {product_label} no está en tu carrito.",
		"bulk_cannot_remove":    "❌ No puedo quitar {qty} de {product_label} porque solo tienes {current_qty}.",
		"bulk_total":            "Total actual: €{total}",
		"bulk_next":             "",
		"bulk_partial_add_note": " (Pediste {qty}, añadí {added} por límite de stock.)",
		"bulk_remove_failed":    "❌ No he podido quitar {product_label}.",
		"bulk_reply_number_id":  "Responde con el número o el ID para seguir con tu pedido.",

		// Checkout
		"checkout_confirm":            "Vas a finalizar la compra. ¿Quieres continuar? (sí/no)",
		"checkout_cancelled":          "Compra cancelada.",
		"checkout_ask_yesno":          "Por favor, responde con 'sí' o 'no'.",
		"checkout_form_open":          "Perfecto ✅ Abro el formulario para tus datos de envío.",
		"checkout_form_open_reminder": "El formulario de envío sigue abierto. Complétalo para continuar.",
		"checkout_review_prompt": "Perfecto ✅ Aquí tienes el resumen del pedido:\n\n" +
			"- Nombre: {full_name}\n- Dirección: {address_line1}\n- Ciudad: {city}\n" +
			"- CP: {postal_code}\n- Teléfono: {phone}\n\n" +
			"¿Confirmas la compra? (sí/no)",
		"checkout_review_cancelled": "Vale 👍 He cancelado el pedido. Vuelves al carrito.",
		"order_confirmed": "¡Pedido confirmado! ✅\n\nGracias por tu compra 🙌\n" +
			"¿Quieres ver el catálogo, recomendaciones o tu carrito?",

		"checkout_form_missing_fields_error": "Faltan campos obligatorios. Revisa el formulario.",
		"checkout_form_missing_fields_msg":   "Ups 😅 faltan datos en el formulario. Por favor complétalo y vuelve a enviarlo.",
		"checkout_form_postal_numeric_error": "El código postal solo puede contener dígitos.",
		"checkout_form_postal_numeric_msg":   "El código postal no parece correcto — solo dígitos, por favor.",
		"checkout_form_phone_numeric_error":  "El teléfono solo puede contener dígitos.",
		"checkout_form_phone_numeric_msg":    "El teléfono no parece correcto — solo dígitos, por favor.",
	},
}

// Lang normalizes the session's preferred language to a supported copy table.
func Lang(s *model.ConversationState) string {
	if strings.ToLower(s.PreferredLanguage) == "es" {
		return "es"
	}
	return "en"
}

// T resolves a copy key for the session's language and substitutes
// {placeholder} params. Missing keys fall back to English, then to the key
// itself.
func T(s *model.ConversationState, key string, params Params) string {
	template, ok := copyTable[Lang(s)][key]
	if !ok || template == "" {
		template, ok = copyTable["en"][key]
		if !ok {
			return key
		}
	}
	for name, value := range params {
		template = strings.ReplaceAll(template, "{"+name+"}", value)
	}
	return template
}

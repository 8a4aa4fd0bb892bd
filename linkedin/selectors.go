package linkedin

// Selectors and JS snippets used across the profile-page flow.
// Centralising them makes future updates trivial — LinkedIn reshuffles its
// markup often, and every known variant lives here.
const (
	// Login wall
	LoginInputSelector = `#username`

	// Profile top card — readiness indicator after navigation
	TopCardSelector = `main section.pv-top-card, main section[class*="top-card"], ` +
		`main section[class*="profile-topcard"], main`

	// Open actions menu (dropdown / popover)
	MenuContentSelector = `div[role="menu"], .artdeco-dropdown__content, .artdeco-popover__content`

	// Confirmation dialog
	DialogButtonSelector = `div[role="dialog"] button, .artdeco-modal__actionbar button`
)

// loginWallJS reports whether the current page is the login wall.
const loginWallJS = `
(() => {
	if (location.pathname.includes('/login')) return true;
	return !!document.querySelector('#username');
})();
`

// connectionStateJS mirrors the degree heuristics a human uses: a visible
// "1st" badge means connected; a Connect button without a Message button
// means not connected; a lone Message button means connected. When nothing
// matches we assume connected and let the menu scan decide.
const connectionStateJS = `
(() => {
	const hasText = (sel, needle) =>
		Array.from(document.querySelectorAll(sel))
			.some(el => (el.innerText || '').toLowerCase().includes(needle));

	const badges = Array.from(document.querySelectorAll('span.dist-value, span.distance-badge, span'))
		.some(el => /(^|\s)1\s*(st|ST)\b/.test((el.innerText || '').trim()));
	if (badges) return true;

	const hasConnect = hasText('main button', 'connect');
	const hasMessage = hasText('main button', 'message');
	if (hasConnect && !hasMessage) return false;
	return true;
})();
`

// openMenuJS locates the "More actions" overflow control on the top card,
// scrolls it into view and clicks it. Candidate order matters: aria labels
// survive redesigns longer than class names do.
const openMenuJS = `
(() => {
	const candidates = [];
	for (const b of document.querySelectorAll('main button')) {
		const aria = (b.getAttribute('aria-label') || '').toLowerCase();
		const text = (b.innerText || '').trim().toLowerCase();
		const id = b.id || '';
		if (aria.includes('more actions')) { candidates.unshift(b); continue; }
		if (id.includes('profile-overflow-action')) { candidates.push(b); continue; }
		if (text === 'more' || aria === 'more') { candidates.push(b); continue; }
	}
	for (const b of candidates) {
		if (b.offsetParent === null) continue;
		b.scrollIntoView({block: 'center', inline: 'center'});
		b.click();
		return {ok: true, reason: ''};
	}
	return {ok: false, reason: 'no visible more-actions control'};
})();
`

// scanMenuJS inspects the open actions menu for a remove-connection item
// without clicking it. Matching is keyword based across text, aria-label and
// title, the same way a human scans the menu.
const scanMenuJS = `
(() => {
	const menu = document.querySelector('div[role="menu"], .artdeco-dropdown__content, .artdeco-popover__content');
	if (!menu) return {found: false, text: ''};
	const items = menu.querySelectorAll('button, a, [role="menuitem"], [role="button"]');
	for (const el of items) {
		const combined = [
			el.innerText || '',
			el.getAttribute('aria-label') || '',
			el.getAttribute('title') || ''
		].join(' ').toLowerCase();
		if (combined.includes('remove connection') ||
			combined.includes('remove your connection') ||
			(combined.includes('remove') && combined.includes('connection')) ||
			combined.includes('disconnect')) {
			return {found: true, text: (el.innerText || '').trim()};
		}
	}
	return {found: false, text: ''};
})();
`

// clickRemoveItemJS is scanMenuJS with the click performed.
const clickRemoveItemJS = `
(() => {
	const menu = document.querySelector('div[role="menu"], .artdeco-dropdown__content, .artdeco-popover__content');
	if (!menu) return {ok: false, reason: 'actions menu not open'};
	const items = menu.querySelectorAll('button, a, [role="menuitem"], [role="button"]');
	for (const el of items) {
		const combined = [
			el.innerText || '',
			el.getAttribute('aria-label') || '',
			el.getAttribute('title') || ''
		].join(' ').toLowerCase();
		if (combined.includes('remove connection') ||
			combined.includes('remove your connection') ||
			(combined.includes('remove') && combined.includes('connection')) ||
			combined.includes('disconnect')) {
			el.scrollIntoView({block: 'center'});
			el.click();
			return {ok: true, reason: ''};
		}
	}
	return {ok: false, reason: 'no remove-connection item in menu'};
})();
`

// confirmDialogJS clicks the confirming button in the removal dialog.
const confirmDialogJS = `
(() => {
	const buttons = document.querySelectorAll('div[role="dialog"] button, .artdeco-modal__actionbar button');
	if (buttons.length === 0) return {ok: false, reason: 'no confirmation dialog'};
	const confirmWords = ['remove', 'disconnect', 'confirm', 'yes', 'ok'];
	for (const b of buttons) {
		const text = (b.innerText || '').trim().toLowerCase();
		if (confirmWords.some(w => text.includes(w))) {
			b.click();
			return {ok: true, reason: ''};
		}
	}
	return {ok: false, reason: 'no confirm button in dialog'};
})();
`

// removedToastJS reports whether a "connection removed" toast is showing.
const removedToastJS = `
(() => {
	const toasts = document.querySelectorAll('[role="status"], [aria-live="polite"], .artdeco-toast-item, [class*="toast"]');
	for (const t of toasts) {
		const text = (t.innerText || '').toLowerCase();
		if (text.includes('removed')) return true;
	}
	return false;
})();
`
